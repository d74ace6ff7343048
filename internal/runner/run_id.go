package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

const runIDSuffixBytes = 6

// NewRunID returns a timestamped run id with a random suffix.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewRunIDWithRand derives the run id suffix from a UUID drawn from r.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return FormatRunID(now, hex.EncodeToString(id[:runIDSuffixBytes])), nil
}

// FormatRunID joins a UTC timestamp and suffix.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}

func ensureRunID(generate func() (string, error)) (string, error) {
	if generate == nil {
		generate = NewRunID
	}
	id, err := generate()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("run ID is empty")
	}
	return id, nil
}
