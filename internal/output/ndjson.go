// Package output writes session events as NDJSON for machines or as text for people.
package output

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/vburojevic/pirtimer/internal/domain"
)

// SchemaVersion is the version stamped on non-session outputs
const SchemaVersion = domain.SchemaVersion

// ErrorOutput is emitted when a command fails
type ErrorOutput struct {
	Type          string `json:"type"` // "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// InfoOutput is a free-form status line
type InfoOutput struct {
	Type          string `json:"type"` // "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Display       string `json:"display,omitempty"`
	Device        string `json:"device,omitempty"`
}

// NDJSONWriter writes one JSON object per line
type NDJSONWriter struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

// NewNDJSONWriter creates a writer on w
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{encoder: json.NewEncoder(w)}
}

// Emit writes a session event
func (w *NDJSONWriter) Emit(event interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(event)
}

// WriteError writes an error line
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.Emit(out)
}

// WriteInfo writes an info line
func (w *NDJSONWriter) WriteInfo(message, display, device string) error {
	return w.Emit(InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Display:       display,
		Device:        device,
	})
}

// Sink receives session events
type Sink interface {
	Emit(event interface{}) error
}

// Tee fans events out to several sinks. Every sink receives every event;
// the first error is returned.
type Tee []Sink

func (t Tee) Emit(event interface{}) error {
	var first error
	for _, s := range t {
		if s == nil {
			continue
		}
		if err := s.Emit(event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
