// Package tm1651 drives the mini battery-level LED displays built on
// the TM1651 or TM1637 chip. The chip speaks a two-line serial bus
// (one clock line, one bidirectional data line) that we bit-bang over
// two GPIO pins.
package tm1651

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// commands the chip understands
const (
	cmdAddrFixed  byte = 0x44 // data command: fixed address mode
	cmdDisplayOff byte = 0x80 // display control: off
	cmdDisplayOn  byte = 0x88 // display control: on, brightness in the low three bits
	cmdAddrStart  byte = 0xC0 // address command: first display register
)

// brightness levels, darkest to brightest
const (
	BrightnessDarkest = iota // 0 is dim, not off
	BrightnessDarker
	BrightnessDark
	BrightnessTypical
	BrightnessSemiBright
	BrightnessBright
	BrightnessBrighter
	BrightnessBrightest

	DefaultBrightness = BrightnessDark
)

// The chip's bus maxes out at 500 kHz; a 50us cycle keeps us far below
// that, robustness over speed.
const clockCycle = 50 * time.Microsecond

const (
	maxPin      = 27 // BCM numbering on the 40-pin header
	maxSegments = 8
)

// levelTab[n] is the segment mask that lights the n lowest segments.
var levelTab = [maxSegments]byte{
	0b00000000,
	0b00000001,
	0b00000011,
	0b00000111,
	0b00001111,
	0b00011111,
	0b00111111,
	0b01111111,
}

// BatteryDisplay controls one display. It owns its clock and data pins
// for its whole lifetime; the two pins must be distinct and nothing
// else may drive them while the display is open. All operations are
// synchronous and single-threaded.
type BatteryDisplay struct {
	bus        PinBus
	clock      clockwork.Clock
	cycle      time.Duration
	clockPin   int
	dataPin    int
	segments   int
	brightness byte
}

// New opens a display on the given BCM pins. It validates its
// arguments, configures both pins as outputs and clears the display.
// The chip acks every byte it receives; if the clear gets no ack there
// is no display on these pins and New fails with NoDisplayFoundError.
func New(bus PinBus, clockPin, dataPin, segments int) (*BatteryDisplay, error) {
	return NewWithTiming(bus, clockwork.NewRealClock(), clockCycle, clockPin, dataPin, segments)
}

// NewWithTiming is New with an injectable clock and base cycle
// duration. Tests run the protocol with a zero cycle; the transition
// order stays exact either way.
func NewWithTiming(bus PinBus, clock clockwork.Clock, cycle time.Duration, clockPin, dataPin, segments int) (*BatteryDisplay, error) {
	if clockPin < 0 || clockPin > maxPin {
		return nil, &InvalidPinError{Pin: clockPin, Role: "clock"}
	}
	if dataPin < 0 || dataPin > maxPin {
		return nil, &InvalidPinError{Pin: dataPin, Role: "data"}
	}
	if segments < 1 || segments > maxSegments {
		return nil, &InvalidSegmentsError{Segments: segments}
	}

	d := &BatteryDisplay{
		bus:        bus,
		clock:      clock,
		cycle:      cycle,
		clockPin:   clockPin,
		dataPin:    dataPin,
		segments:   segments,
		brightness: DefaultBrightness,
	}

	d.bus.Setup(clockPin, Output)
	d.bus.Setup(dataPin, Output)

	ack, _ := d.ClearDisplay()
	if !ack {
		return nil, &NoDisplayFoundError{ClockPin: clockPin, DataPin: dataPin}
	}

	return d, nil
}

// Segments returns the number of LED segments the display was opened
// with.
func (d *BatteryDisplay) Segments() int {
	return d.segments
}

// Brightness returns the stored brightness.
func (d *BatteryDisplay) Brightness() int {
	return int(d.brightness)
}

// SetBrightness stores a brightness from 0 (darkest, still on) to 7.
// It takes effect on the next display-affecting command.
func (d *BatteryDisplay) SetBrightness(brightness int) error {
	if brightness < 0 || brightness > BrightnessBrightest {
		return &InvalidBrightnessError{Brightness: brightness}
	}
	d.brightness = byte(brightness)
	return nil
}

// SetLevel lights the lowest `level` segments. level runs from 0 to
// segments-1. The returned bool is true iff the chip acked every byte
// of the three commands; a false ack is not an error, the caller
// decides what to do with it.
func (d *BatteryDisplay) SetLevel(level int) (bool, error) {
	if level < 0 || level >= d.segments {
		return false, &InvalidLevelError{Level: level, Segments: d.segments}
	}

	ack := true
	// fixed addressing first, then the register write, then re-assert
	// display-on with the current brightness: the chip's control state
	// is not guaranteed to persist, so it goes out on every level change
	ack = d.sendCommand(cmdAddrFixed) && ack
	ack = d.sendCommand(cmdAddrStart, levelTab[level]) && ack
	ack = d.sendCommand(cmdDisplayOn+d.brightness) && ack

	return ack, nil
}

// ClearDisplay blanks all segments.
func (d *BatteryDisplay) ClearDisplay() (bool, error) {
	return d.SetLevel(0)
}

// Off turns the display off. Distinct from brightness 0, which is a
// dim-but-lit state.
func (d *BatteryDisplay) Off() (bool, error) {
	return d.sendCommand(cmdDisplayOff), nil
}

// sendCommand frames data bytes between a start and a stop condition.
// Returns true iff every byte was acked.
func (d *BatteryDisplay) sendCommand(data ...byte) bool {
	ack := true

	d.start()
	for _, b := range data {
		ack = d.writeByte(b) && ack
	}
	d.stop()

	return ack
}

// writeByte shifts one byte out LSB first, then runs the ninth clock
// cycle that samples the chip's ack. Returns true iff the chip pulled
// the data line low.
func (d *BatteryDisplay) writeByte(b byte) bool {
	// a data bit may only change while CLK is low; a change during
	// CLK high would read as a start or stop condition
	for i := 0; i < 8; i++ {
		bit := Low
		if b&0x01 != 0 {
			bit = High
		}
		d.halfCycleClockLow(bit)
		d.halfCycleClockHigh()
		b >>= 1
	}

	// ninth cycle: release DIO high while CLK is low, then clock the
	// ack out of the chip
	d.halfCycleClockLow(High)
	return d.halfCycleClockHighAck() == Low
}

// halfCycleClockLow starts a cycle with CLK low and puts a data bit on
// the line.
func (d *BatteryDisplay) halfCycleClockLow(bit PinState) {
	d.setClock(Low)
	d.clock.Sleep(d.cycle / 4)

	d.setData(bit)
	d.clock.Sleep(d.cycle / 4)
}

// halfCycleClockHigh finishes a cycle with CLK high.
func (d *BatteryDisplay) halfCycleClockHigh() {
	d.setClock(High)
	d.clock.Sleep(d.cycle / 2)
}

// halfCycleClockHighAck finishes the ninth cycle: CLK goes high, DIO
// switches to input and gets sampled. A low sample is the ack. On an
// ack the chip keeps driving DIO low into the next cycle, so we drive
// it low ourselves when we take the line back.
func (d *BatteryDisplay) halfCycleClockHighAck() PinState {
	d.setClock(High)
	d.clock.Sleep(d.cycle / 4)

	d.bus.Setup(d.dataPin, Input)
	ack := d.bus.Read(d.dataPin)

	d.bus.Setup(d.dataPin, Output)
	if ack == Low {
		d.setData(Low)
	}

	d.clock.Sleep(d.cycle / 4)
	d.setClock(Low)

	return ack
}

// delineate moves DIO from begin to its opposite while CLK is high,
// which the chip reads as a transmission delimiter instead of a bit.
func (d *BatteryDisplay) delineate(begin PinState) {
	d.setData(begin)
	d.clock.Sleep(d.cycle / 2)

	d.setClock(High)
	d.clock.Sleep(d.cycle / 4)

	if begin == High {
		d.setData(Low)
	} else {
		d.setData(High)
	}
	d.clock.Sleep(d.cycle / 4)
}

// start condition: DIO falls while CLK is high.
func (d *BatteryDisplay) start() {
	d.delineate(High)
}

// stop condition: DIO rises while CLK is high.
func (d *BatteryDisplay) stop() {
	d.delineate(Low)
}

func (d *BatteryDisplay) setClock(state PinState) {
	d.bus.Write(d.clockPin, state)
}

func (d *BatteryDisplay) setData(state PinState) {
	d.bus.Write(d.dataPin, state)
}
