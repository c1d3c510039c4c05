package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"
	"vervloesem.eu/pibattery/tm1651"
)

var wg sync.WaitGroup

// pibattery -level={level} | -processor

// exit codes, one per error kind
const (
	exitOK                = 0
	exitInvalidPin        = 1
	exitInvalidBrightness = 2
	exitInvalidLevel      = 3
	exitNoDisplayFound    = 4
	exitInvalidSegments   = 5
)

func exitCode(err error) int {
	switch err.(type) {
	case *tm1651.InvalidPinError:
		return exitInvalidPin
	case *tm1651.InvalidBrightnessError:
		return exitInvalidBrightness
	case *tm1651.InvalidLevelError:
		return exitInvalidLevel
	case *tm1651.NoDisplayFoundError:
		return exitNoDisplayFound
	case *tm1651.InvalidSegmentsError:
		return exitInvalidSegments
	}
	return 1
}

func main() {
	os.Exit(run(initSettings()))
}

func run(s *settings) (code int) {
	setupLogging(s)
	if s.GetBool("debug") {
		s.Dump()
	}

	level := s.GetInt("level")
	processor := s.GetBool("processor")
	if (level >= 0) == processor {
		fmt.Fprintln(os.Stderr, "specify exactly one of -level or -processor")
		flag.Usage()
		return 2
	}

	var bus tm1651.PinBus
	if s.GetBool("simulated") {
		logBus := tm1651.NewLogBus()
		logBus.Debug = s.GetBool("debug")
		logBus.Record = false
		bus = logBus
	} else {
		rpioBus, err := tm1651.OpenRpioBus()
		if err != nil {
			log.Printf("could not open the GPIO: %v", err)
			return exitNoDisplayFound
		}
		// release the GPIO on every path except a pin validation
		// failure, which never acquired the pins
		defer func() {
			if code != exitInvalidPin {
				rpioBus.Close()
			}
		}()
		bus = rpioBus
	}

	display, err := tm1651.New(bus, s.GetInt("clockPin"), s.GetInt("dataPin"), s.GetInt("segments"))
	if err != nil {
		log.Print(err)
		return exitCode(err)
	}

	if err := display.SetBrightness(s.GetInt("brightness")); err != nil {
		log.Print(err)
		return exitCode(err)
	}

	if !processor {
		ack, err := display.SetLevel(level)
		if err != nil {
			log.Print(err)
			return exitCode(err)
		}
		if !ack {
			log.Printf("display did not ack level %d", level)
		}
		return exitOK
	}

	// processor mode runs until interrupted
	rt := initRuntime(s, clockwork.NewRealClock(), display)
	startLevelWriter(rt)
	startCPUGauge(rt)
	if addr := s.GetString("httpListen"); addr != "" {
		startHTTPService(rt, addr)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Print("shutting down")
	close(rt.comms.quit)
	wg.Wait()
	display.Off()
	return exitOK
}
