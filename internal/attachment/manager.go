// Package attachment holds the single pending image a follow-up question may
// carry, validates it, and prepares its preview encoding.
package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// MaxSize is the largest accepted attachment, 5 MiB.
const MaxSize = 5 << 20

var (
	// ErrUnsupportedType is returned for anything that is not a JPEG or PNG.
	ErrUnsupportedType = errors.New("attachment must be a JPEG or PNG image")
	// ErrTooLarge is returned for files over MaxSize.
	ErrTooLarge = fmt.Errorf("attachment exceeds the %d MiB limit", MaxSize>>20)
	// ErrNoAttachment is returned when no attachment is held.
	ErrNoAttachment = errors.New("no attachment held")
)

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Snapshot is an immutable copy of a held attachment, taken at submit time.
// The in-flight request works from the snapshot, so replacing or clearing the
// slot mid-flight only affects the next send.
type Snapshot struct {
	Name    string
	Mime    string
	Data    []byte
	Preview string // data URI, for the conversation log
}

type held struct {
	name  string
	mime  string
	data  []byte
	ready chan struct{} // closed when preview is available
	prev  string
}

// Manager owns the at-most-one pending attachment slot. Setting a new
// attachment replaces the previous one without error; Clear drops it.
type Manager struct {
	mu  sync.Mutex
	cur *held
}

func NewManager() *Manager {
	return &Manager{}
}

// Set validates and stores an attachment, replacing any previous one.
// The base64 preview is encoded off the calling goroutine; the attachment
// becomes usable for a send once the encoding finishes.
func (m *Manager) Set(name string, data []byte) error {
	mime := http.DetectContentType(data)
	if !acceptedTypes[mime] {
		return ErrUnsupportedType
	}
	if len(data) > MaxSize {
		return ErrTooLarge
	}

	h := &held{
		name:  name,
		mime:  mime,
		data:  data,
		ready: make(chan struct{}),
	}
	go func() {
		h.prev = "data:" + h.mime + ";base64," + base64.StdEncoding.EncodeToString(h.data)
		close(h.ready)
	}()

	m.mu.Lock()
	m.cur = h
	m.mu.Unlock()
	return nil
}

// Clear unconditionally drops the held attachment and its preview.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.cur = nil
	m.mu.Unlock()
}

// Has reports whether an attachment is currently held.
func (m *Manager) Has() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur != nil
}

// Preview waits for the preview encoding of the held attachment and returns
// it as a data URI.
func (m *Manager) Preview(ctx context.Context) (string, error) {
	snap, err := m.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return snap.Preview, nil
}

// Snapshot returns an immutable copy of the held attachment, waiting for its
// preview encoding to complete first. It returns ErrNoAttachment when the
// slot is empty.
func (m *Manager) Snapshot(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	h := m.cur
	m.mu.Unlock()
	if h == nil {
		return nil, ErrNoAttachment
	}

	select {
	case <-h.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	data := make([]byte, len(h.data))
	copy(data, h.data)
	return &Snapshot{
		Name:    h.name,
		Mime:    h.mime,
		Data:    data,
		Preview: h.prev,
	}, nil
}
