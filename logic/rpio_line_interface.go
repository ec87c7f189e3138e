package logic

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stianeikeland/go-rpio/v4"

	"github.com/UltimateSandbox/stoplight/util"
)

// maxBCMPin is the highest BCM pin addressable through the bank 0 set/clear
// registers used for batched writes
const maxBCMPin = 31

type RpioPins []rpio.Pin

// DefaultPins is the canonical wiring of the intersection:
// road A (N-S) on GPIO 17/27/22, road B (E-W) on GPIO 23/24/25
func DefaultPins() RpioPins {
	return RpioPins{17, 27, 22, 23, 24, 25}
}

// RpioLineInterface is a line interface which drives raspberry pi gpio pins
type RpioLineInterface struct {
	pins RpioPins
	open bool
	log  *logrus.Entry
}

var _ LineInterface = (*RpioLineInterface)(nil)

func NewRpioLineInterface(pins RpioPins) *RpioLineInterface {
	return &RpioLineInterface{
		pins, false,
		util.Logger.WithField("line_interface", "rpio"),
	}
}

func (i *RpioLineInterface) Name() string {
	return "rpio"
}

func (i *RpioLineInterface) Initialize() (err error) {
	if i.open {
		return nil
	}
	for id, pin := range i.pins {
		if pin > maxBCMPin {
			return util.NewUnavailableLineError(LineName(LineID(id)),
				fmt.Sprintf("pin %d out of range", pin))
		}
	}
	i.log.Info("opening rpio")
	if err = rpio.Open(); err != nil {
		return util.NewAccessDeniedError("gpio memory", err)
	}
	for _, pin := range i.pins {
		pin.Output()
		pin.Low()
	}
	i.open = true
	return nil
}

func (i *RpioLineInterface) Deinitialize() (err error) {
	if !i.open {
		return nil
	}
	for _, pin := range i.pins {
		pin.Low()
	}
	i.open = false
	return rpio.Close()
}

func (i *RpioLineInterface) Count() LineID {
	return (LineID)(len(i.pins))
}

func (i *RpioLineInterface) Set(id LineID, level bool) {
	i.log.WithFields(logrus.Fields{
		"line": LineName(id), "level": level,
	}).Debug("setting line level")
	pin := i.pins[id]
	if level {
		pin.High()
	} else {
		pin.Low()
	}
}

func (i *RpioLineInterface) Get(id LineID) bool {
	return i.pins[id].Read() == rpio.High
}

func (i *RpioLineInterface) SetLevels(active LineSet) error {
	if !i.open {
		return util.NewWriteFailureError("all lines",
			fmt.Errorf("gpio memory not mapped"))
	}
	// clear first, then raise: no two conflicting lines are ever lit together
	for _, pin := range i.pins {
		pin.Low()
	}
	for id := range i.pins {
		if active.Has(LineID(id)) {
			i.pins[id].High()
		}
	}
	return nil
}
