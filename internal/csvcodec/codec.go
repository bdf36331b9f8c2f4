// Package csvcodec serializes diary entries to single CSV records and back.
//
// The parser is a small explicit state machine rather than a split on commas so
// that quoted fields may carry commas, doubled quotes and newlines.
package csvcodec

import (
	"strconv"
	"strings"

	"github.com/zamm-dev/diary-mvp/internal/models"
)

// Header is the first line of every persisted diary file
const Header = "id,date,title,content"

// FieldCount is the number of columns in a record
const FieldCount = 4

const (
	separator = ','
	quote     = '"'
)

// EscapeField quotes raw when it contains a separator, a quote or a line break,
// doubling every inner quote. Other values are returned unchanged.
func EscapeField(raw string) string {
	if !strings.ContainsAny(raw, ",\"\n\r") {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw) + 2)
	sb.WriteByte(quote)
	for i := 0; i < len(raw); i++ {
		if raw[i] == quote {
			sb.WriteByte(quote)
		}
		sb.WriteByte(raw[i])
	}
	sb.WriteByte(quote)
	return sb.String()
}

// FormatLine renders an entry as one CSV record without the trailing newline
func FormatLine(e models.Entry) string {
	return strconv.Itoa(e.ID) + "," +
		EscapeField(e.Date) + "," +
		EscapeField(e.Title) + "," +
		EscapeField(e.Content)
}

// ParseLine decodes one record into an entry. It fails when the line does not
// yield exactly four fields or the id is not an integer. Text fields longer
// than their bound are truncated.
func ParseLine(line string) (models.Entry, bool) {
	fields, _ := splitFields(line)
	if len(fields) != FieldCount {
		return models.Entry{}, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return models.Entry{}, false
	}

	return models.Entry{
		ID:      id,
		Date:    models.Truncate(fields[1], models.MaxDateLen),
		Title:   models.Truncate(fields[2], models.MaxTitleLen),
		Content: models.Truncate(fields[3], models.MaxContentLen),
	}, true
}

type parseState int

const (
	stateUnquoted parseState = iota
	stateQuoted
	stateQuoteSeenInQuoted
)

// splitFields walks the line once and returns its fields together with the
// state the walk ended in. Only a quote at the very start of a field opens a
// quoted field; elsewhere it is literal. The last field is read to the end of
// the line, so commas past the third separator belong to the content.
func splitFields(line string) ([]string, parseState) {
	fields := make([]string, 0, FieldCount)
	var field strings.Builder
	state := stateUnquoted
	atFieldStart := true

	emit := func() bool {
		fields = append(fields, field.String())
		field.Reset()
		return len(fields) == FieldCount
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch state {
		case stateUnquoted:
			if atFieldStart && c == quote {
				state = stateQuoted
				atFieldStart = false
				continue
			}
			atFieldStart = false
			if c == separator && len(fields) < FieldCount-1 {
				emit()
				atFieldStart = true
				continue
			}
			field.WriteByte(c)

		case stateQuoted:
			if c == quote {
				state = stateQuoteSeenInQuoted
				continue
			}
			field.WriteByte(c)

		case stateQuoteSeenInQuoted:
			switch c {
			case quote:
				field.WriteByte(quote)
				state = stateQuoted
			case separator:
				if emit() {
					return fields, state
				}
				state = stateUnquoted
				atFieldStart = true
			default:
				// The field closed without a separator; the next field starts here.
				if emit() {
					return fields, state
				}
				state = stateUnquoted
				atFieldStart = false
				field.WriteByte(c)
			}
		}
	}

	// An empty line has no fields at all.
	if line == "" {
		return nil, state
	}

	// An unterminated quoted field runs to the end of the input.
	emit()
	return fields, state
}

// inQuotedField reports whether text ends inside a quoted field that is still
// open, so the record continues on the next physical line.
func inQuotedField(text string) bool {
	_, state := splitFields(text)
	return state == stateQuoted
}
