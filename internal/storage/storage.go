package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps the publish history across runs.

// Record describes one successful publish of a data row.
type Record struct {
	Title      string    `json:"title"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Store tracks which data rows were already published.
type Store interface {
	Close() error
	PublishedBefore(rowID string) (bool, error)
	MarkPublished(rowID, title string) error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) PublishedBefore(string) (bool, error) { return false, nil }
func (noopStore) MarkPublished(string, string) error   { return nil }
