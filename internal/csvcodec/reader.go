package csvcodec

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Reader yields logical records from a stream. A record spans several physical
// lines only while a field that opened with a quote is still unclosed; a quote
// inside an unquoted field is literal and never joins lines.
type Reader struct {
	br   *bufio.Reader
	line int
}

// NewReader creates a record reader over r
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Line returns the physical line number where the last record returned by
// Next ended.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next record without its line terminator. It returns io.EOF
// once the input is exhausted.
func (r *Reader) Next() (string, error) {
	var sb strings.Builder
	read := false

	for {
		chunk, err := r.br.ReadString('\n')
		if chunk != "" {
			read = true
			r.line++
			sb.WriteString(chunk)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", err
			}
			if !read {
				return "", io.EOF
			}
			return trimTerminator(sb.String()), nil
		}

		record := trimTerminator(sb.String())
		if !inQuotedField(record) {
			return record, nil
		}
	}
}

func trimTerminator(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
