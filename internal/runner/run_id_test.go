package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestFormatRunID verifies run ID formatting.
func TestFormatRunID(t *testing.T) {
	timestamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := FormatRunID(timestamp, "deadbeef")
	if got != "20240102T030405Z-deadbeef" {
		t.Fatalf("unexpected run id: %q", got)
	}
}

// TestNewRunIDWithRand verifies deterministic run ID generation with a reader.
func TestNewRunIDWithRand(t *testing.T) {
	timestamp := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	seed := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	got, err := NewRunIDWithRand(timestamp, bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "20240607T080910Z-001122334455" {
		t.Fatalf("unexpected run id: %q", got)
	}
}

func TestNewRunIDWithShortReader(t *testing.T) {
	_, err := NewRunIDWithRand(time.Now(), bytes.NewReader([]byte{0x01}))
	if err == nil || !strings.Contains(err.Error(), "generate run id") {
		t.Fatalf("expected generate error, got %v", err)
	}
}

func TestEnsureRunID(t *testing.T) {
	if _, err := ensureRunID(func() (string, error) { return "", nil }); err == nil {
		t.Fatalf("expected error for empty id")
	}
	boom := errors.New("boom")
	if _, err := ensureRunID(func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
	id, err := ensureRunID(nil)
	if err != nil || id == "" {
		t.Fatalf("expected generated id, got %q %v", id, err)
	}
}
