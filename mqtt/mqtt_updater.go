package mqtt

import (
	"github.com/sirupsen/logrus"

	"github.com/UltimateSandbox/stoplight/logic"
	"github.com/UltimateSandbox/stoplight/util"
)

// MQTTUpdater forwards phase observations from a Sequencer to MQTT topics
type MQTTUpdater struct {
	onPhaseUpdate chan logic.PhaseUpdate
	stop          chan int
	api           *MQTTApi
	logger        *logrus.Entry
}

// NewMQTTUpdater creates a new MQTTUpdater listening to the specified
// Sequencer. Must be called before the Sequencer is started.
func NewMQTTUpdater(sequencer *logic.Sequencer) *MQTTUpdater {
	onPhaseUpdate := make(chan logic.PhaseUpdate, 10)
	sequencer.OnPhaseUpdate = onPhaseUpdate
	return &MQTTUpdater{
		onPhaseUpdate,
		make(chan int),
		nil,
		util.Logger.WithField("module", "MQTTUpdater"),
	}
}

func (u *MQTTUpdater) run() {
	u.logger.Debug("starting updater")
	for {
		select {
		case <-u.stop:
			return
		case update := <-u.onPhaseUpdate:
			if !u.api.client.IsConnected() {
				continue
			}
			if err := u.api.UpdatePhase(update); err != nil {
				u.logger.WithError(err).Error("error updating phase")
			}
		}
	}
}

// Start starts the MQTTUpdater to listen and update topics
func (u *MQTTUpdater) Start(api *MQTTApi) {
	u.api = api
	go u.run()
}

// Stop stops the updater from updating topics
func (u *MQTTUpdater) Stop() {
	u.stop <- 0
}
