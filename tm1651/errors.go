package tm1651

import "fmt"

// InvalidPinError means a BCM pin number outside 0-27 was requested.
type InvalidPinError struct {
	Pin  int
	Role string // "clock" or "data"
}

func (e *InvalidPinError) Error() string {
	return fmt.Sprintf("invalid %s pin %d: pin should be a number from 0 to 27", e.Role, e.Pin)
}

// InvalidBrightnessError means a brightness outside 0-7 was requested.
type InvalidBrightnessError struct {
	Brightness int
}

func (e *InvalidBrightnessError) Error() string {
	return fmt.Sprintf("invalid brightness %d: brightness should be a number from 0 to 7", e.Brightness)
}

// InvalidLevelError means a level outside the configured segment range
// was requested.
type InvalidLevelError struct {
	Level    int
	Segments int
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid level %d: level should be a number from 0 to %d", e.Level, e.Segments-1)
}

// InvalidSegmentsError means a segment count outside 1-8 was requested.
type InvalidSegmentsError struct {
	Segments int
}

func (e *InvalidSegmentsError) Error() string {
	return fmt.Sprintf("invalid number of segments %d: segments should be a number from 1 to 8", e.Segments)
}

// NoDisplayFoundError means the chip never acknowledged the initial
// clear, so no display is connected on these pins.
type NoDisplayFoundError struct {
	ClockPin int
	DataPin  int
}

func (e *NoDisplayFoundError) Error() string {
	return fmt.Sprintf("no display found on clock pin %d and data pin %d", e.ClockPin, e.DataPin)
}
