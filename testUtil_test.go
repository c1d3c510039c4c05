package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"vervloesem.eu/pibattery/tm1651"
)

// logDisplay records what the workers ask of the display.
type logDisplay struct {
	mu         sync.Mutex
	segments   int
	brightness int
	levels     []int
	ack        bool
}

func newLogDisplay(segments int) *logDisplay {
	return &logDisplay{
		segments:   segments,
		brightness: tm1651.DefaultBrightness,
		ack:        true,
	}
}

func (d *logDisplay) SetLevel(level int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if level < 0 || level >= d.segments {
		return false, &tm1651.InvalidLevelError{Level: level, Segments: d.segments}
	}
	d.levels = append(d.levels, level)
	return d.ack, nil
}

func (d *logDisplay) SetBrightness(brightness int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if brightness < 0 || brightness > 7 {
		return &tm1651.InvalidBrightnessError{Brightness: brightness}
	}
	d.brightness = brightness
	return nil
}

func (d *logDisplay) ClearDisplay() (bool, error) {
	return d.SetLevel(0)
}

func (d *logDisplay) Off() (bool, error) {
	return d.ack, nil
}

func (d *logDisplay) Segments() int {
	return d.segments
}

func (d *logDisplay) Brightness() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

func (d *logDisplay) recorded() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.levels...)
}

func testRuntime(d display) (runtimeConfig, clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return initRuntime(defaultSettings(), clock, d), clock
}

// waitFor polls cond for up to a second of real time; the fake clock
// only gates the sleeps, not the channel handoffs.
func waitFor(cond func() bool) bool {
	for i := 0; i < 1000; i++ {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}
