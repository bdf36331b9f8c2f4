// Package store holds the ordered in-memory collection of diary entries and
// enforces its invariants: ids are unique and never reissued until DeleteAll,
// dates are unique, and the order is whatever the user made it.
package store

import (
	"slices"

	"github.com/zamm-dev/diary-mvp/internal/models"
)

const (
	// InitialCapacity is the backing capacity of an empty store
	InitialCapacity = 8
	// FirstID is the id handed out first after creation or DeleteAll
	FirstID = 1
)

// Store is an ordered, growable collection of entries. It is not safe for
// concurrent use; callers drive it from a single control flow.
type Store struct {
	entries []models.Entry
	nextID  int
}

// New creates an empty store
func New() *Store {
	return &Store{
		entries: make([]models.Entry, 0, InitialCapacity),
		nextID:  FirstID,
	}
}

// Add appends a new entry with the next id. It fails with ErrDuplicateDate when
// an entry already uses date, and with ErrFieldTooLong when a field exceeds its
// bound. Nothing is modified on failure.
func (s *Store) Add(date, title, content string) (models.Entry, error) {
	if s.ExistsOnDate(date) {
		return models.Entry{}, models.ErrDuplicateDate
	}
	if err := models.CheckBounds(date, title, content); err != nil {
		return models.Entry{}, err
	}

	if len(s.entries) == cap(s.entries) {
		s.grow()
	}

	entry := models.Entry{
		ID:      s.nextID,
		Date:    date,
		Title:   title,
		Content: content,
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry, nil
}

// grow doubles the backing capacity, copying entries in order
func (s *Store) grow() {
	newCap := cap(s.entries) * 2
	if newCap == 0 {
		newCap = InitialCapacity
	}
	grown := make([]models.Entry, len(s.entries), newCap)
	copy(grown, s.entries)
	s.entries = grown
}

// Delete removes the entry with id, shifting later entries one slot earlier
func (s *Store) Delete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return models.ErrEntryNotFound
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// MoveUp swaps the entry with its predecessor
func (s *Store) MoveUp(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return models.ErrEntryNotFound
	}
	if i == 0 {
		return models.ErrAtBoundary
	}
	s.entries[i], s.entries[i-1] = s.entries[i-1], s.entries[i]
	return nil
}

// MoveDown swaps the entry with its successor
func (s *Store) MoveDown(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return models.ErrEntryNotFound
	}
	if i == len(s.entries)-1 {
		return models.ErrAtBoundary
	}
	s.entries[i], s.entries[i+1] = s.entries[i+1], s.entries[i]
	return nil
}

// DeleteAll empties the store and resets the id counter
func (s *Store) DeleteAll() {
	s.entries = make([]models.Entry, 0, InitialCapacity)
	s.nextID = FirstID
}

// UpdateContent replaces the content of an existing entry
func (s *Store) UpdateContent(id int, content string) error {
	i := s.indexOf(id)
	if i < 0 {
		return models.ErrEntryNotFound
	}
	if len(content) > models.MaxContentLen {
		return models.NewFieldTooLongError(models.FieldContent, len(content), models.MaxContentLen)
	}
	s.entries[i].Content = content
	return nil
}

// Replace swaps the whole collection for entries, keeping their order, and
// reseeds the id counter past the largest id among all of them, dropped ones
// included, so no id seen in the input is issued again. Entries repeating an
// id or a date already taken are dropped.
func (s *Store) Replace(entries []models.Entry) (dropped int) {
	capacity := InitialCapacity
	for capacity < len(entries) {
		capacity *= 2
	}

	s.entries = make([]models.Entry, 0, capacity)
	s.nextID = FirstID

	ids := make(map[int]struct{}, len(entries))
	dates := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
		if _, dup := ids[e.ID]; dup {
			dropped++
			continue
		}
		if _, dup := dates[e.Date]; dup {
			dropped++
			continue
		}
		ids[e.ID] = struct{}{}
		dates[e.Date] = struct{}{}

		s.entries = append(s.entries, e)
	}
	return dropped
}

// FindByID returns the entry with id
func (s *Store) FindByID(id int) (models.Entry, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Entry{}, false
	}
	return s.entries[i], true
}

// IndexOf returns the position of id in the ordering, or -1
func (s *Store) IndexOf(id int) int {
	return s.indexOf(id)
}

// ExistsOnDate reports whether an entry uses exactly this date string
func (s *Store) ExistsOnDate(date string) bool {
	for _, e := range s.entries {
		if e.Date == date {
			return true
		}
	}
	return false
}

// Count returns the number of entries
func (s *Store) Count() int {
	return len(s.entries)
}

// All returns a copy of the entries in their current order
func (s *Store) All() []models.Entry {
	return slices.Clone(s.entries)
}

// NextID returns the id the next Add will assign
func (s *Store) NextID() int {
	return s.nextID
}

// Cap returns the current backing capacity
func (s *Store) Cap() int {
	return cap(s.entries)
}

func (s *Store) indexOf(id int) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
