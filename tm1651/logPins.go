package tm1651

import "log"

type busOp int

const (
	opSetup busOp = iota
	opWrite
	opRead
)

type busEvent struct {
	op    busOp
	pin   int
	mode  PinMode  // opSetup
	state PinState // opWrite value, or the level an opRead returned
}

// LogBus is a simulated PinBus. It records every setup, write and read
// in order, so tests can replay the exact line transitions a command
// produced. Reads on a pin in input mode answer Low when AckLow is set,
// which is how a present, acknowledging chip behaves.
type LogBus struct {
	// AckLow makes input-mode reads return Low (an ack). Clear it to
	// simulate an absent chip.
	AckLow bool
	// Debug dumps every transition to the log.
	Debug bool
	// Record keeps the transition record. Long-running simulated runs
	// switch it off so the record cannot grow without bound.
	Record bool

	modes  map[int]PinMode
	states map[int]PinState
	events []busEvent
}

func NewLogBus() *LogBus {
	return &LogBus{
		AckLow: true,
		Record: true,
		modes:  make(map[int]PinMode),
		states: make(map[int]PinState),
	}
}

func (b *LogBus) Setup(pin int, mode PinMode) {
	b.modes[pin] = mode
	if b.Record {
		b.events = append(b.events, busEvent{op: opSetup, pin: pin, mode: mode})
	}
	if b.Debug {
		dir := "in"
		if mode == Output {
			dir = "out"
		}
		log.Printf("sim: setup pin %d %s", pin, dir)
	}
}

func (b *LogBus) Write(pin int, state PinState) {
	b.states[pin] = state
	if b.Record {
		b.events = append(b.events, busEvent{op: opWrite, pin: pin, state: state})
	}
	if b.Debug {
		log.Printf("sim: write pin %d = %d", pin, state)
	}
}

func (b *LogBus) Read(pin int) PinState {
	state := b.states[pin]
	if b.modes[pin] == Input {
		// the peer drives the line during the ack window
		if b.AckLow {
			state = Low
		} else {
			state = High
		}
	}
	if b.Record {
		b.events = append(b.events, busEvent{op: opRead, pin: pin, state: state})
	}
	if b.Debug {
		log.Printf("sim: read pin %d -> %d", pin, state)
	}
	return state
}

// takeEvents returns the recorded transitions and clears the record.
func (b *LogBus) takeEvents() []busEvent {
	ev := b.events
	b.events = nil
	return ev
}
