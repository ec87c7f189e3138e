package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UltimateSandbox/stoplight/logic"
	"github.com/UltimateSandbox/stoplight/util"
)

func init() {
	util.Logger.Out = ioutil.Discard
}

func TestConfigDataJSON_Defaults(t *testing.T) {
	ass := assert.New(t)
	os.Setenv("RPI", "")

	var j ConfigDataJSON
	c, err := j.ToConfigData()
	require.NoError(t, err)

	ass.Equal([]uint16{17, 27, 22, 23, 24, 25}, c.Pins)
	ass.Equal("mock", c.LineInterface.Name())
	ass.Equal(logic.DefaultPhases(), c.Phases)
}

func TestConfigDataJSON_Parse(t *testing.T) {
	ass := assert.New(t)
	os.Setenv("RPI", "")

	var j ConfigDataJSON
	data := `{
		"lineInterface": {"pins": [2, 3, 4, 5, 6, 7]},
		"timing": {"green": 0.5, "yellow": 0.2, "allRed": 0.1}
	}`
	require.NoError(t, json.Unmarshal([]byte(data), &j))

	c, err := j.ToConfigData()
	require.NoError(t, err)
	ass.Equal([]uint16{2, 3, 4, 5, 6, 7}, c.Pins)
	require.Len(t, c.Phases, 6)
	ass.Equal(500*time.Millisecond, c.Phases[0].Hold)
	ass.Equal(200*time.Millisecond, c.Phases[1].Hold)
	ass.Equal(100*time.Millisecond, c.Phases[2].Hold)
}

func TestConfigDataJSON_BadPinCount(t *testing.T) {
	var j ConfigDataJSON
	j.LineInterface.Pins = []uint16{17, 27}
	_, err := j.ToConfigData()
	assert.Error(t, err)
}

func TestLineInterfaceJSON_SelectsHardware(t *testing.T) {
	ass := assert.New(t)

	ij := LineInterfaceJSON{Pins: []uint16{17, 27, 22, 23, 24, 25}}

	os.Setenv("RPI", "true")
	ass.Equal("rpio", ij.ToInterface().Name())

	os.Setenv("RPI", "")
	ass.Equal("mock", ij.ToInterface().Name())
}

func TestLoadConfig(t *testing.T) {
	ass := assert.New(t)
	os.Setenv("RPI", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.Setenv("CONFIG", path)
	defer os.Unsetenv("CONFIG")

	// missing file falls back to defaults
	c, err := LoadConfig()
	require.NoError(t, err)
	ass.Equal([]uint16{17, 27, 22, 23, 24, 25}, c.Pins)

	data := `{"timing": {"green": 1}}`
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	c, err = LoadConfig()
	require.NoError(t, err)
	ass.Equal(time.Second, c.Phases[0].Hold)
	ass.Equal(logic.DefaultYellowHold, c.Phases[1].Hold)

	require.NoError(t, ioutil.WriteFile(path, []byte("{not json"), 0644))
	_, err = LoadConfig()
	ass.Error(err)
}
