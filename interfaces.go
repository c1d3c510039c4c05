package main

// display is what the workers need from a battery display. The
// tm1651.BatteryDisplay satisfies it; tests substitute a recording
// fake.
type display interface {
	SetLevel(level int) (bool, error)
	SetBrightness(brightness int) error
	ClearDisplay() (bool, error)
	Off() (bool, error)
	Segments() int
	Brightness() int
}
