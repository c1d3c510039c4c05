package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/assert"
)

func testHandler() (*apiHandler, runtimeConfig) {
	rt, _ := testRuntime(newLogDisplay(7))
	return &apiHandler{rt: rt, level: -1, brightness: rt.display.Brightness()}, rt
}

func TestAPIStatus(t *testing.T) {
	handler, _ := testHandler()

	w := httptest.NewRecorder()
	handler.apiStatus(w, httptest.NewRequest("GET", "/api/status", nil))
	assert.Equal(t, w.Code, http.StatusOK)

	var status struct {
		Level      int `json:"level"`
		Brightness int `json:"brightness"`
		Segments   int `json:"segments"`
	}
	assert.NilError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, status.Level, -1)
	assert.Equal(t, status.Brightness, 2)
	assert.Equal(t, status.Segments, 7)
}

func TestAPILevel(t *testing.T) {
	handler, rt := testHandler()

	w := httptest.NewRecorder()
	handler.apiLevel(w, httptest.NewRequest("POST", "/api/level", strings.NewReader(`{"level": 3}`)))
	assert.Equal(t, w.Code, http.StatusAccepted)
	assert.Equal(t, <-rt.comms.levels, 3)
	assert.Equal(t, handler.level, 3)
}

func TestAPILevelRejected(t *testing.T) {
	handler, rt := testHandler()

	for _, body := range []string{`{"level": 7}`, `{"level": -1}`, `{}`, `not json`} {
		w := httptest.NewRecorder()
		handler.apiLevel(w, httptest.NewRequest("POST", "/api/level", strings.NewReader(body)))
		assert.Equal(t, w.Code, http.StatusBadRequest, "body %s", body)
	}

	// nothing reached the writer
	select {
	case level := <-rt.comms.levels:
		t.Fatalf("unexpected level %d", level)
	default:
	}
}

func TestAPIBrightness(t *testing.T) {
	handler, rt := testHandler()

	w := httptest.NewRecorder()
	handler.apiBrightness(w, httptest.NewRequest("POST", "/api/brightness", strings.NewReader(`{"brightness": 5}`)))
	assert.Equal(t, w.Code, http.StatusAccepted)
	assert.Equal(t, <-rt.comms.brightness, 5)

	w = httptest.NewRecorder()
	handler.apiBrightness(w, httptest.NewRequest("POST", "/api/brightness", strings.NewReader(`{"brightness": 8}`)))
	assert.Equal(t, w.Code, http.StatusBadRequest)
}
