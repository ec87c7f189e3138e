package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	rpio "github.com/stianeikeland/go-rpio/v4"

	"github.com/UltimateSandbox/stoplight/logic"
	"github.com/UltimateSandbox/stoplight/util"
)

// ConfigData is the app state after being read from config
type ConfigData struct {
	Pins          []uint16
	LineInterface logic.LineInterface
	Phases        []logic.Phase
}

// LineInterfaceJSON selects and configures the hardware backing the lines
type LineInterfaceJSON struct {
	// Pins are the BCM pin numbers in line order: road A red, yellow,
	// green, then road B red, yellow, green
	Pins []uint16 `json:"pins"`
}

// ToInterface creates the LineInterface for this config. The RPI environment
// variable selects real hardware; anything else gets the in-memory mock.
func (ij *LineInterfaceJSON) ToInterface() logic.LineInterface {
	rpi := os.Getenv("RPI") == "true"
	if rpi {
		pins := make(logic.RpioPins, len(ij.Pins))
		for i, pin := range ij.Pins {
			pins[i] = (rpio.Pin)(pin)
		}
		return logic.NewRpioLineInterface(pins)
	}
	return logic.NewMockLineInterface(len(ij.Pins))
}

// TimingJSON is the phase hold durations, in seconds
type TimingJSON struct {
	Green  float64 `json:"green"`
	Yellow float64 `json:"yellow"`
	AllRed float64 `json:"allRed"`
}

func (tj *TimingJSON) orDefault() (green, yellow, allRed time.Duration) {
	green = secondsOr(tj.Green, logic.DefaultGreenHold)
	yellow = secondsOr(tj.Yellow, logic.DefaultYellowHold)
	allRed = secondsOr(tj.AllRed, logic.DefaultAllRedHold)
	return
}

func secondsOr(seconds float64, def time.Duration) time.Duration {
	if seconds <= 0 {
		return def
	}
	return time.Duration(seconds * float64(time.Second))
}

// ConfigDataJSON is the JSON form of config data
type ConfigDataJSON struct {
	LineInterface LineInterfaceJSON `json:"lineInterface"`
	Timing        TimingJSON        `json:"timing"`
}

// ToConfigData converts a ConfigDataJSON to a ConfigData
func (j *ConfigDataJSON) ToConfigData() (c ConfigData, err error) {
	if len(j.LineInterface.Pins) == 0 {
		j.LineInterface.Pins = defaultPins()
	}
	if len(j.LineInterface.Pins) != int(logic.LineCount) {
		err = fmt.Errorf("expected %d pins, got %d",
			logic.LineCount, len(j.LineInterface.Pins))
		return
	}
	c.Pins = j.LineInterface.Pins
	c.LineInterface = j.LineInterface.ToInterface()
	c.Phases = logic.NewPhases(j.Timing.orDefault())
	return
}

func defaultPins() []uint16 {
	pins := make([]uint16, logic.LineCount)
	for i, pin := range logic.DefaultPins() {
		pins[i] = (uint16)(pin)
	}
	return pins
}

func findConfigFile() (configFile string) {
	configFile = os.Getenv("CONFIG")
	if configFile == "" {
		dir, _ := os.Getwd()
		configFile = dir + "/config.json"
	}
	return
}

var log = util.Logger.WithField("module", "config")

// DefaultConfig is the canonical intersection: default pins and timing
func DefaultConfig() (config ConfigData) {
	j := ConfigDataJSON{}
	config, _ = j.ToConfigData()
	return
}

// LoadConfig loads a ConfigData from the config file. A missing file is not
// an error: the canonical defaults are used.
func LoadConfig() (config ConfigData, err error) {
	configFile := findConfigFile()

	log.Debugf("loading config from %v", configFile)
	file, err := ioutil.ReadFile(configFile)
	if os.IsNotExist(err) {
		log.Debug("no config file, using defaults")
		return DefaultConfig(), nil
	}
	if err != nil {
		err = fmt.Errorf("could not read config file: %v", err)
		return
	}

	var j ConfigDataJSON
	err = json.Unmarshal(file, &j)
	if err != nil {
		err = fmt.Errorf("could not parse config file: %v", err)
		return
	}

	config, err = j.ToConfigData()
	return
}
