package main

import "log"

func startLevelWriter(rt runtimeConfig) {
	wg.Add(1)
	go runLevelWriter(rt)
}

// runLevelWriter is the only goroutine that touches the display while
// the gauge or the control API is running. The bus protocol is a
// strictly ordered sequence of line transitions, so display access is
// funneled through one owner.
func runLevelWriter(rt runtimeConfig) {
	defer wg.Done()

	for {
		select {
		case <-rt.comms.quit:
			return
		case level := <-rt.comms.levels:
			ack, err := rt.display.SetLevel(level)
			if err != nil {
				log.Printf("set level %d: %v", level, err)
			} else if !ack {
				log.Printf("display did not ack level %d", level)
			}
		case brightness := <-rt.comms.brightness:
			if err := rt.display.SetBrightness(brightness); err != nil {
				log.Printf("set brightness %d: %v", brightness, err)
			}
		}
	}
}
