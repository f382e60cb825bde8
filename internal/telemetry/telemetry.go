// Package telemetry provides a JSONL event stream for recording what happens
// to a chart while it is viewed. Every reset, toggle, drag and editor request
// is recorded as a structured JSON event, making sessions auditable and
// replayable.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindReset         = "reset"
	KindSliceToggled  = "slice_toggled"
	KindRotated       = "rotated"
	KindTranslated    = "translated"
	KindContextMenu   = "context_menu"
	KindEditSkipped   = "edit_skipped"
	KindAliveDegraded = "alive_degraded"
	KindExported      = "exported"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, and optional context identifiers (root person, sector address)
// along with arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Root      string    `json:"root,omitempty"`
	Address   string    `json:"addr,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes a single event to the JSONL file. It is safe for concurrent use.
// Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record emits an event of kind stamped with the current time.
func (e *Emitter) Record(kind, root, addr string, data any) error {
	if e == nil {
		return nil
	}
	return e.Emit(Event{Timestamp: e.now().UTC(), Kind: kind, Root: root, Address: addr, Data: data})
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
