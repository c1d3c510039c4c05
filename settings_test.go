package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := defaultSettings()

	assert.Equal(t, s.GetInt("clockPin"), 24)
	assert.Equal(t, s.GetInt("dataPin"), 23)
	assert.Equal(t, s.GetInt("brightness"), 2)
	assert.Equal(t, s.GetInt("segments"), 7)
	assert.Equal(t, s.GetDuration("refreshTime"), 2*time.Second)
	assert.Equal(t, s.GetString("logFile"), "")

	// missing keys fall back to zero values
	assert.Equal(t, s.GetInt("nope"), 0)
	assert.Equal(t, s.GetString("nope"), "")
	assert.Equal(t, s.GetBool("nope"), false)
	assert.Equal(t, s.GetDuration("nope"), time.Duration(-1))
}

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()

	err := s.settingsFromJSON([]byte(`{
		"clockPin": 5,
		"dataPin": 6,
		"segments": 8,
		"refreshTime": "5s",
		"simulated": true,
		"logFile": "/var/log/pibattery.log"
	}`))
	assert.NilError(t, err)

	assert.Equal(t, s.GetInt("clockPin"), 5)
	assert.Equal(t, s.GetInt("dataPin"), 6)
	assert.Equal(t, s.GetInt("segments"), 8)
	assert.Equal(t, s.GetDuration("refreshTime"), 5*time.Second)
	assert.Equal(t, s.GetBool("simulated"), true)
	assert.Equal(t, s.GetString("logFile"), "/var/log/pibattery.log")

	// untouched keys keep their defaults
	assert.Equal(t, s.GetInt("brightness"), 2)
}

func TestSettingsFromJSONBadValue(t *testing.T) {
	s := defaultSettings()

	err := s.settingsFromJSON([]byte(`{"clockPin": "not a pin"}`))
	assert.Assert(t, err != nil)

	err = s.settingsFromJSON([]byte(`{"refreshTime": "not a duration"}`))
	assert.Assert(t, err != nil)
}
