package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// sseRetry is the reconnect delay suggested to EventSource clients.
const sseRetry = 3000 // ms

// LastEventIDHeader is sent by EventSource clients when they reconnect.
const LastEventIDHeader = "Last-Event-ID"

var errStreamingUnsupported = errors.New("streaming not supported")

// SSEWriter writes preview updates as Server-Sent Events. Every event carries
// the document version as its id so a reconnecting client can resume.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the stream headers and sends the retry hint.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &SSEWriter{w: w, flusher: flusher}
	if _, err := fmt.Fprintf(w, "retry: %d\n\n", sseRetry); err != nil {
		return nil, err
	}
	flusher.Flush()
	return s, nil
}

// Event sends one named event with id and a JSON payload.
func (s *SSEWriter) Event(name string, id uint64, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", id, name, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Error sends a terminal "error" event without an id.
func (s *SSEWriter) Error(message string) {
	payload, _ := json.Marshal(map[string]string{"error": message})
	if _, err := fmt.Fprintf(s.w, "event: error\ndata: %s\n\n", payload); err == nil {
		s.flusher.Flush()
	}
}

// Ping sends a comment line so proxies keep the stream open.
func (s *SSEWriter) Ping() error {
	if _, err := fmt.Fprint(s.w, ": ping\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// lastEventID returns the version a reconnecting client already has.
func lastEventID(r *http.Request) (uint64, bool) {
	raw := r.Header.Get(LastEventIDHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
