package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type userProfile struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

var demoUsers = []user{
	{ID: 1, Name: "Alice"},
	{ID: 2, Name: "Bob"},
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Hello, World!")
}

// handleEcho returns the request body unchanged.
func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEchoBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "body_too_large"})
		return
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		ct = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleHelloName(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, fmt.Sprintf("Hello, %s!", chi.URLParam(r, "name")))
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, demoUsers)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		badRequest(w, "id must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, userProfile{Name: fmt.Sprintf("User %d", id), Age: 30})
}

// handleDelayed waits the requested number of seconds, capped at MaxDelay,
// or until the client goes away.
func (s *Server) handleDelayed(w http.ResponseWriter, r *http.Request) {
	secs, err := strconv.ParseUint(chi.URLParam(r, "seconds"), 10, 64)
	if err != nil {
		badRequest(w, "seconds must be a non-negative integer")
		return
	}
	if limit := uint64(MaxDelay / time.Second); secs > limit {
		secs = limit
	}

	timer := time.NewTimer(time.Duration(secs) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
		writeText(w, http.StatusOK, fmt.Sprintf("Response after %d second(s)", secs))
	case <-r.Context().Done():
		s.logger.Debug("delayed request cancelled", "seconds", secs)
	}
}
