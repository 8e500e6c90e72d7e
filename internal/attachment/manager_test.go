package attachment

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0}
)

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, pngHeader)
	return data
}

func TestSetAcceptsJPEGAndPNG(t *testing.T) {
	m := NewManager()

	if err := m.Set("scan.png", pngBytes(64)); err != nil {
		t.Fatalf("PNG should be accepted, got %v", err)
	}
	if err := m.Set("scan.jpg", append(append([]byte{}, jpegHeader...), make([]byte, 32)...)); err != nil {
		t.Fatalf("JPEG should be accepted, got %v", err)
	}
	if !m.Has() {
		t.Error("expected an attachment to be held")
	}
}

func TestSetRejectsUnsupportedType(t *testing.T) {
	m := NewManager()

	err := m.Set("notes.txt", []byte("just some text, not an image"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if m.Has() {
		t.Error("a rejected file must not be held")
	}
}

func TestSetRejectsOversizedPNG(t *testing.T) {
	m := NewManager()

	// 6 MiB PNG: valid type, over the 5 MiB limit.
	err := m.Set("big.png", pngBytes(6<<20))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if m.Has() {
		t.Error("an oversized file must not be held")
	}
	if _, err := m.Snapshot(context.Background()); !errors.Is(err, ErrNoAttachment) {
		t.Errorf("no snapshot should be buildable from a rejected file, got %v", err)
	}
}

func TestSetReplacesPreviousAttachment(t *testing.T) {
	m := NewManager()

	if err := m.Set("first.png", pngBytes(32)); err != nil {
		t.Fatal(err)
	}
	second := pngBytes(48)
	if err := m.Set("second.png", second); err != nil {
		t.Fatal(err)
	}

	snap, err := m.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Name != "second.png" {
		t.Errorf("expected the later attachment to win, got %q", snap.Name)
	}
	if !bytes.Equal(snap.Data, second) {
		t.Error("snapshot data does not match the held attachment")
	}
}

func TestClearDropsAttachment(t *testing.T) {
	m := NewManager()

	if err := m.Set("scan.png", pngBytes(32)); err != nil {
		t.Fatal(err)
	}
	m.Clear()
	if m.Has() {
		t.Error("Clear must drop the held attachment")
	}
	if _, err := m.Preview(context.Background()); !errors.Is(err, ErrNoAttachment) {
		t.Errorf("expected ErrNoAttachment after Clear, got %v", err)
	}
}

func TestPreviewIsBase64DataURI(t *testing.T) {
	m := NewManager()
	data := pngBytes(32)

	if err := m.Set("scan.png", data); err != nil {
		t.Fatal(err)
	}
	preview, err := m.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(preview, prefix) {
		t.Fatalf("expected a png data URI, got %q", preview[:min(len(preview), 40)])
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(preview, prefix))
	if err != nil {
		t.Fatalf("preview payload is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("preview payload does not round-trip to the original bytes")
	}
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	m := NewManager()
	if err := m.Set("scan.png", pngBytes(32)); err != nil {
		t.Fatal(err)
	}

	snap, err := m.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Replacing the slot after the snapshot must not affect it: the
	// in-flight request works from the copy.
	if err := m.Set("other.jpg", append(append([]byte{}, jpegHeader...), make([]byte, 16)...)); err != nil {
		t.Fatal(err)
	}
	if snap.Name != "scan.png" {
		t.Errorf("snapshot changed after slot replacement: %q", snap.Name)
	}
	if snap.Mime != "image/png" {
		t.Errorf("snapshot mime changed: %q", snap.Mime)
	}
}
