package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// eventStream writes Server-Sent Events for pipeline progress. The
// first write or encode failure sticks: later emits become no-ops, so
// handlers can emit unconditionally and check Err once at the end.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	err     error
}

// newEventStream switches the response into event-stream mode. Fails
// when the writer cannot flush, which streaming requires.
func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")

	return &eventStream{w: w, flusher: flusher}, nil
}

// Emit sends one named event with a JSON payload and flushes it.
func (s *eventStream) Emit(name string, payload any) {
	if s.err != nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.err = err
		return
	}

	var frame bytes.Buffer
	fmt.Fprintf(&frame, "event: %s\ndata: %s\n\n", name, data)
	if _, err := s.w.Write(frame.Bytes()); err != nil {
		s.err = err
		return
	}
	s.flusher.Flush()
}

// Fail sends a terminal error event.
func (s *eventStream) Fail(message string) {
	s.Emit("error", map[string]string{"error": message})
}

// Done sends the completion event that closes a successful stream.
func (s *eventStream) Done(runID, stage string) {
	s.Emit("complete", map[string]string{
		"run_id": runID,
		"stage":  stage,
	})
}

// Err reports the first write or encode failure, if any.
func (s *eventStream) Err() error {
	return s.err
}
