package history

import (
	"time"
)

// Build is one successful package build.
type Build struct {
	Time        time.Time
	Archive     string
	Entries     []string
	Size        int64
	SHA256      string
	ColorFont   string
	OutlineFont string
}

// Store abstracts build history storage.
type Store interface {
	Record(b Build) error
	Builds(limit int) ([]Build, error) // newest first, 0 = all
	Clear() error
	Path() string
	Close() error
}
