package main

import (
	"log"

	"github.com/shirou/gopsutil/cpu"
)

func startCPUGauge(rt runtimeConfig) {
	wg.Add(1)
	go runCPUGauge(rt)
}

// cpuLevel maps a load percentage onto the display's level range.
func cpuLevel(percent float64, segments int) int {
	level := int(percent / 100 * float64(segments+1))
	if level > segments-1 {
		level = segments - 1
	}
	if level < 0 {
		level = 0
	}
	return level
}

// runCPUGauge samples the CPU load and feeds the derived level to the
// level writer until quit.
func runCPUGauge(rt runtimeConfig) {
	defer wg.Done()

	refresh := rt.settings.GetDuration("refreshTime")
	segments := rt.display.Segments()

	for {
		select {
		case <-rt.comms.quit:
			return
		default:
		}

		percent, err := cpu.Percent(0, false)
		if err != nil || len(percent) == 0 {
			log.Printf("cpu sample failed: %v", err)
		} else {
			select {
			case rt.comms.levels <- cpuLevel(percent[0], segments):
			case <-rt.comms.quit:
				return
			}
		}

		rt.clock.Sleep(refresh)
	}
}
