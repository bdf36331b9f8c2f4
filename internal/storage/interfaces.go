package storage

import "github.com/zamm-dev/diary-mvp/internal/store"

// Storage defines the persistence operations the diary service relies on
type Storage interface {
	// Load replaces the contents of s with what is on disk
	Load(s *store.Store) (LoadReport, error)
	// Save overwrites the backing file with the contents of s
	Save(s *store.Store) error
	// Path returns the location of the backing file
	Path() string
	// Exists reports whether the backing file is present
	Exists() bool
}

// LoadReport describes what a Load found in the file
type LoadReport struct {
	Records int  `json:"records"` // data records read, blank lines excluded
	Loaded  int  `json:"loaded"`  // entries now in the store
	Skipped int  `json:"skipped"` // records that failed to parse or repeated an id/date
	Missing bool `json:"missing"` // the file did not exist
}
