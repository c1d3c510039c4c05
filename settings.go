package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"time"

	"github.com/buger/jsonparser"
)

// keep settings generic, type-convert on the fly
type settings struct {
	settings map[string]interface{}
}

func defaultSettings() *settings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion automatic later
	s["clockPin"] = 24
	s["dataPin"] = 23
	s["brightness"] = 2
	s["segments"] = 7
	s["refreshTime"], _ = time.ParseDuration("2s")
	s["logFile"] = ""
	s["httpListen"] = ""
	s["debug"] = false

	// there is no GPIO to drive off the Pi
	s["simulated"] = runtime.GOARCH != "arm"

	return &settings{settings: s}
}

func (s *settings) settingsFromJSON(data []byte) error {
	for k, initVal := range s.settings {
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			// key absent, keep the default
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			s.settings[k], err = jsonparser.GetBoolean(data, k)
		case time.Duration:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur time.Duration
				dur, err = time.ParseDuration(str)
				if err == nil {
					s.settings[k] = dur
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return fmt.Errorf("bad value for %q: %v", k, err)
		}
	}
	return nil
}

func initSettings() *settings {
	s := defaultSettings()

	// define our flags first
	configFile := flag.String("config", "", "JSON config file path (optional)")
	clockPin := flag.Int("clock-pin", s.GetInt("clockPin"), "clock pin in BCM notation (range: 0-27)")
	dataPin := flag.Int("data-pin", s.GetInt("dataPin"), "data pin in BCM notation (range: 0-27)")
	brightness := flag.Int("brightness", s.GetInt("brightness"), "brightness (range: 0-7)")
	segments := flag.Int("segments", s.GetInt("segments"), "number of LED segments (range: 1-8)")
	level := flag.Int("level", -1, "set the battery level once and exit (range: 0 to segments-1)")
	processor := flag.Bool("processor", false, "continuously show the CPU load")
	httpListen := flag.String("http", s.GetString("httpListen"), "listen address for the control API, empty disables it")
	simulated := flag.Bool("simulated", s.GetBool("simulated"), "log bus transitions instead of driving the GPIO")
	debug := flag.Bool("debug", false, "dump settings and bus traffic")

	// parse the flags
	flag.Parse()

	// config file is optional
	if *configFile != "" {
		data, err := ioutil.ReadFile(*configFile)
		if err != nil {
			log.Fatalf("Could not load conf file '%s', terminating", *configFile)
		}
		if err := s.settingsFromJSON(data); err != nil {
			log.Fatal(err.Error())
		}
	}

	// flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "clock-pin":
			s.settings["clockPin"] = *clockPin
		case "data-pin":
			s.settings["dataPin"] = *dataPin
		case "brightness":
			s.settings["brightness"] = *brightness
		case "segments":
			s.settings["segments"] = *segments
		case "http":
			s.settings["httpListen"] = *httpListen
		case "simulated":
			s.settings["simulated"] = *simulated
		case "debug":
			s.settings["debug"] = *debug
		}
	})

	// the actions only come from the command line
	s.settings["level"] = *level
	s.settings["processor"] = *processor

	return s
}

func (s *settings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *settings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *settings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *settings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *settings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
