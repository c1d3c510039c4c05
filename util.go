package main

import (
	"log"

	"github.com/jonboulle/clockwork"
	"gopkg.in/natefinch/lumberjack.v2"
)

type commChannels struct {
	quit       chan struct{}
	levels     chan int
	brightness chan int
}

type runtimeConfig struct {
	settings *settings
	clock    clockwork.Clock
	comms    commChannels
	display  display
}

func initCommChannels() commChannels {
	return commChannels{
		quit:       make(chan struct{}),
		levels:     make(chan int, 1),
		brightness: make(chan int, 1),
	}
}

func initRuntime(s *settings, clock clockwork.Clock, d display) runtimeConfig {
	return runtimeConfig{
		settings: s,
		clock:    clock,
		comms:    initCommChannels(),
		display:  d,
	}
}

func setupLogging(s *settings) {
	if logFile := s.GetString("logFile"); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
}
