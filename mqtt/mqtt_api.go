package mqtt

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/UltimateSandbox/stoplight/config"
	"github.com/UltimateSandbox/stoplight/logic"
	"github.com/UltimateSandbox/stoplight/util"
)

const CONNECT_RETRY_TIMEOUT = 10 * time.Second
const MQTT_TIMEOUT = 10 * time.Second

// MQTTApi publishes the state of the intersection over MQTT. It is a pure
// status surface: the controller takes no commands.
type MQTTApi struct {
	config *config.ConfigData
	client mqtt.Client
	prefix string
	logger *logrus.Entry
}

// NewMQTTApi creates a new MQTTApi that publishes the specified config
func NewMQTTApi(config *config.ConfigData) *MQTTApi {
	return &MQTTApi{
		config,
		nil, "",
		util.Logger.WithField("module", "MQTTApi"),
	}
}

func (a *MQTTApi) createMQTTOpts() (opts *mqtt.ClientOptions) {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}
	brokerURI, err := url.Parse(broker)
	if err != nil {
		a.logger.WithError(err).Error("error parsing MQTT_BROKER")
		brokerURI = &url.URL{Scheme: "tcp", Host: "localhost:1883"}
	}
	if brokerURI.Scheme == "mqtt" { // translate scheme to compatible
		brokerURI.Scheme = "tcp"
	} else if brokerURI.Scheme == "mqtts" {
		brokerURI.Scheme = "ssl"
	} else if brokerURI.Scheme == "" {
		brokerURI.Scheme = "tcp"
	}
	if brokerURI.Path != "" {
		a.prefix = brokerURI.Path
	} else {
		a.prefix = "stoplight"
	}
	if a.prefix[0] == '/' {
		a.prefix = a.prefix[1:]
	}
	a.logger.Debugf("broker prefix: '%s'", a.prefix)

	cid := os.Getenv("MQTT_CID")
	if cid == "" {
		cid = "stoplight-1"
	}

	opts = mqtt.NewClientOptions()
	opts.AddBroker(brokerURI.String())
	if brokerURI.User != nil {
		username := brokerURI.User.Username()
		opts.SetUsername(username)
		password, _ := brokerURI.User.Password()
		opts.SetPassword(password)
		a.logger.WithFields(logrus.Fields{
			"username": username,
		}).Debug("authenticating to mqtt server")
	}
	opts.SetClientID(cid)
	opts.SetCleanSession(false)
	return
}

// Start connects to the MQTT broker in the background, retrying until it
// succeeds. The lights never wait on the broker.
func (a *MQTTApi) Start() {
	opts := a.createMQTTOpts()
	opts.SetWill(a.prefix+"/connected", "false", 1, true)
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		a.logger.Info("connected to mqtt broker")
		a.updateConnected(true)
		a.UpdateIntersection()
	})
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		a.logger.WithError(err).Warn("lost connection to mqtt broker")
	})
	a.client = mqtt.NewClient(opts)

	go func() {
		for {
			if token := a.client.Connect(); token.WaitTimeout(MQTT_TIMEOUT) && token.Error() != nil {
				a.logger.WithError(token.Error()).
					Errorf("error connecting to mqtt broker. will retry in %v", CONNECT_RETRY_TIMEOUT)
				time.Sleep(CONNECT_RETRY_TIMEOUT)
			} else {
				break
			}
		}
	}()
}

// Stop disconnects from the broker
func (a *MQTTApi) Stop() {
	if a.client.IsConnected() {
		a.logger.Info("disconnecting from mqtt broker")
		a.updateConnected(false)
		a.client.Disconnect(250)
	} else {
		a.logger.Warn("was never connected to broker")
	}
}

// Prefix gets the topic prefix of this MQTTApi
func (a *MQTTApi) Prefix() string {
	return a.prefix
}

func (a *MQTTApi) updateConnected(connected bool) (err error) {
	str := strconv.FormatBool(connected)
	token := a.client.Publish(a.prefix+"/connected", 1, true, str)
	if token.WaitTimeout(MQTT_TIMEOUT); token.Error() != nil {
		return token.Error()
	}
	return
}

// IntersectionJSON is the static description of the intersection published
// at connect
type IntersectionJSON struct {
	Pins      []uint16 `json:"pins"`
	GreenSec  float64  `json:"greenSec"`
	YellowSec float64  `json:"yellowSec"`
	AllRedSec float64  `json:"allRedSec"`
}

// UpdateIntersection publishes the pin assignment and timing of the
// intersection
func (a *MQTTApi) UpdateIntersection() (err error) {
	phases := a.config.Phases
	data := IntersectionJSON{
		Pins:      a.config.Pins,
		GreenSec:  phases[0].Hold.Seconds(),
		YellowSec: phases[1].Hold.Seconds(),
		AllRedSec: phases[2].Hold.Seconds(),
	}
	bytes, err := json.Marshal(&data)
	if err != nil {
		err = fmt.Errorf("error marshalling intersection: %v", err)
		return
	}
	a.client.Publish(a.prefix+"/intersection", 1, true, bytes)
	return
}

// PhaseJSON is one phase observation as published
type PhaseJSON struct {
	Cycle int64  `json:"cycle"`
	RoadA string `json:"roadA"`
	RoadB string `json:"roadB"`
}

// UpdatePhase publishes the current phase of the intersection
func (a *MQTTApi) UpdatePhase(update logic.PhaseUpdate) (err error) {
	data := PhaseJSON{
		Cycle: update.Cycle,
		RoadA: update.Phase.RoadA.String(),
		RoadB: update.Phase.RoadB.String(),
	}
	bytes, err := json.Marshal(&data)
	if err != nil {
		err = fmt.Errorf("error marshalling phase: %v", err)
		return
	}
	a.client.Publish(a.prefix+"/phase", 1, true, bytes)
	return
}
