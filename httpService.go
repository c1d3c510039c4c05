package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"sync"

	"github.com/buger/jsonparser"
	"github.com/gorilla/mux"
	"golang.org/x/net/context"
)

// apiHandler serves the small control API. It never touches the
// display itself; accepted values go to the level writer over the
// comm channels.
type apiHandler struct {
	rt runtimeConfig

	mu         sync.Mutex
	level      int // last accepted level, -1 before the first one
	brightness int
}

func startHTTPService(rt runtimeConfig, addr string) {
	handler := &apiHandler{
		rt:         rt,
		level:      -1,
		brightness: rt.display.Brightness(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/level", handler.apiLevel).Methods("POST")
	r.HandleFunc("/api/brightness", handler.apiBrightness).Methods("POST")

	srv := &http.Server{Addr: addr, Handler: r}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("starting control api on %s", addr)
		err := srv.ListenAndServe()
		log.Print(err)
		log.Print("Exiting control api")
	}()

	// stop serving when the workers quit
	go func() {
		<-rt.comms.quit
		srv.Shutdown(context.Background())
	}()
}

func (h *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	status := struct {
		Level      int `json:"level"`
		Brightness int `json:"brightness"`
		Segments   int `json:"segments"`
	}{
		Level:      h.level,
		Brightness: h.brightness,
		Segments:   h.rt.display.Segments(),
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("status encode: %v", err)
	}
}

func (h *apiHandler) apiLevel(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	val, err := jsonparser.GetInt(body, "level")
	if err != nil {
		http.Error(w, "missing level", http.StatusBadRequest)
		return
	}

	level := int(val)
	if level < 0 || level >= h.rt.display.Segments() {
		http.Error(w, "level out of range", http.StatusBadRequest)
		return
	}

	select {
	case h.rt.comms.levels <- level:
	case <-h.rt.comms.quit:
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (h *apiHandler) apiBrightness(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	val, err := jsonparser.GetInt(body, "brightness")
	if err != nil {
		http.Error(w, "missing brightness", http.StatusBadRequest)
		return
	}

	brightness := int(val)
	if brightness < 0 || brightness > 7 {
		http.Error(w, "brightness out of range", http.StatusBadRequest)
		return
	}

	select {
	case h.rt.comms.brightness <- brightness:
	case <-h.rt.comms.quit:
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	h.mu.Lock()
	h.brightness = brightness
	h.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}
