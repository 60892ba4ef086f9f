package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sseWriter emits server-sent events as "data: <json>\n\n" frames,
// flushing after every frame so tokens reach the client immediately.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	return &sseWriter{w: w, flusher: flusher}, nil
}

// Event writes one typed frame: {"type": <type>, ...payload fields}.
func (s *sseWriter) Event(eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sse event: %w", err)
	}

	// Splice the type discriminator into the payload object.
	frame := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &frame); err != nil {
		return fmt.Errorf("sse payload must be an object: %w", err)
	}
	typeField, _ := json.Marshal(eventType)
	frame["type"] = typeField

	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal sse frame: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write sse frame: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// Done terminates the stream with the sentinel frame.
func (s *sseWriter) Done() error {
	if _, err := fmt.Fprint(s.w, "data: [DONE]\n\n"); err != nil {
		return fmt.Errorf("write sse done: %w", err)
	}
	s.flusher.Flush()
	return nil
}
