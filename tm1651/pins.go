package tm1651

import (
	"github.com/stianeikeland/go-rpio"
)

// PinMode selects the direction of a GPIO line.
type PinMode int

const (
	Input PinMode = iota
	Output
)

// PinState is the level of a GPIO line.
type PinState int

const (
	Low  PinState = iota // 0
	High                 // 1
)

// PinBus is the low-level GPIO capability the driver runs on. A bus
// knows nothing about the protocol; it only moves single pins. The
// driver owns its two pins exclusively, nothing else may touch them
// while a display is open.
type PinBus interface {
	Setup(pin int, mode PinMode)
	Write(pin int, state PinState)
	Read(pin int) PinState
}

// RpioBus drives the Broadcom GPIO through /dev/gpiomem.
type RpioBus struct {
}

// OpenRpioBus maps the GPIO memory range. Call Close when done.
func OpenRpioBus() (*RpioBus, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}
	return &RpioBus{}, nil
}

func (b *RpioBus) Setup(pin int, mode PinMode) {
	p := rpio.Pin(pin)
	if mode == Output {
		p.Output()
	} else {
		p.Input()
	}
}

func (b *RpioBus) Write(pin int, state PinState) {
	p := rpio.Pin(pin)
	if state == High {
		p.High()
	} else {
		p.Low()
	}
}

func (b *RpioBus) Read(pin int) PinState {
	if rpio.Pin(pin).Read() == rpio.High {
		return High
	}
	return Low
}

func (b *RpioBus) Close() {
	rpio.Close()
}
