package models

import "unicode/utf8"

// Field bounds in bytes. Dates and titles are short, content holds a full entry.
const (
	MaxDateLen    = 31
	MaxTitleLen   = 127
	MaxContentLen = 9998
)

// Entry represents one diary entry
type Entry struct {
	ID      int    `json:"id" yaml:"id"`
	Date    string `json:"date" yaml:"date"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// NewEntry creates an entry without an assigned ID
func NewEntry(date, title, content string) Entry {
	return Entry{
		Date:    date,
		Title:   title,
		Content: content,
	}
}

// Field names, in column order
const (
	FieldID      = "id"
	FieldDate    = "date"
	FieldTitle   = "title"
	FieldContent = "content"
)

// Truncate cuts s to at most max bytes, backing off to the previous rune
// boundary so a multi-byte character is never split.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// CheckBounds returns an ErrFieldTooLong error naming the first field that
// exceeds its bound, or nil.
func CheckBounds(date, title, content string) error {
	switch {
	case len(date) > MaxDateLen:
		return NewFieldTooLongError(FieldDate, len(date), MaxDateLen)
	case len(title) > MaxTitleLen:
		return NewFieldTooLongError(FieldTitle, len(title), MaxTitleLen)
	case len(content) > MaxContentLen:
		return NewFieldTooLongError(FieldContent, len(content), MaxContentLen)
	}
	return nil
}
