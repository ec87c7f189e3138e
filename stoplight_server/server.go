package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"

	c "github.com/UltimateSandbox/stoplight/config"
	l "github.com/UltimateSandbox/stoplight/logic"
	"github.com/UltimateSandbox/stoplight/mqtt"
	"github.com/UltimateSandbox/stoplight/util"
)

func main() {
	// channel which is notified on an interrupt signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	godotenv.Load()
	util.InitLogLevel()
	var logger = util.Logger.WithField("module", "server")

	config, err := c.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("error loading config")
	}

	logger.WithFields(log.Fields{
		"roadA": config.Pins[:3], "roadB": config.Pins[3:],
		"green":  config.Phases[0].Hold,
		"yellow": config.Phases[1].Hold,
		"allRed": config.Phases[2].Hold,
	}).Info("stoplight starting")

	err = config.LineInterface.Initialize()
	if err != nil {
		logger.WithError(err).Fatal("error initializing lines")
	}

	waitGroup := sync.WaitGroup{}

	sequencer := l.NewSequencer(config.LineInterface, config.Phases)
	updater := mqtt.NewMQTTUpdater(sequencer)

	api := mqtt.NewMQTTApi(&config)
	api.Start()
	updater.Start(api)

	sequencer.Start(&waitGroup)
	logger.Info("sequencer running")

	var runErr error
	select {
	case <-sigc:
		logger.Info("interrupt received, stopping")
		sequencer.Stop()
		runErr = <-sequencer.Done()
	case runErr = <-sequencer.Done():
	}
	waitGroup.Wait()

	updater.Stop()
	api.Stop()

	// force every line off, even if the sequencer already shut them down
	if err := config.LineInterface.SetLevels(0); err != nil {
		logger.WithError(err).Warn("error clearing lines")
	}
	if err := config.LineInterface.Deinitialize(); err != nil {
		logger.WithError(err).Warn("error releasing lines")
	}

	if runErr != nil {
		logger.WithError(runErr).Fatal("driver failure")
	}
	logger.Info("stoplight stopped")
}
