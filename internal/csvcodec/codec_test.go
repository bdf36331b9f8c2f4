package csvcodec

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamm-dev/diary-mvp/internal/models"
)

func TestEscapeField(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"plain text", "plain text"},
		{"", ""},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line1\nline2", "\"line1\nline2\""},
		{"carriage\rreturn", "\"carriage\rreturn\""},
		{`"`, `""""`},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, EscapeField(tc.raw))
		})
	}
}

func TestParseLine_UnquotedFields(t *testing.T) {
	entry, ok := ParseLine("1,2023-01-15,First Day,Started working on the project.")
	require.True(t, ok)
	assert.Equal(t, models.Entry{
		ID:      1,
		Date:    "2023-01-15",
		Title:   "First Day",
		Content: "Started working on the project.",
	}, entry)
}

func TestParseLine_QuotedFields(t *testing.T) {
	entry, ok := ParseLine(`2,2023-03-22,"A ""Tricky"" Entry","Contains a comma, and quotes."`)
	require.True(t, ok)
	assert.Equal(t, 2, entry.ID)
	assert.Equal(t, "2023-03-22", entry.Date)
	assert.Equal(t, `A "Tricky" Entry`, entry.Title)
	assert.Equal(t, "Contains a comma, and quotes.", entry.Content)
}

func TestParseLine_EmbeddedCommaAndQuotesInOneField(t *testing.T) {
	entry, ok := ParseLine(`3,2023-04-01,Contact,"John Doe,""123 Main St."",456-7890"`)
	require.True(t, ok)
	assert.Equal(t, `John Doe,"123 Main St.",456-7890`, entry.Content)
}

func TestParseLine_QuotedNewline(t *testing.T) {
	entry, ok := ParseLine("4,2023-05-01,\"Multi\nline\",\"first\nsecond\n\"")
	require.True(t, ok)
	assert.Equal(t, "Multi\nline", entry.Title)
	assert.Equal(t, "first\nsecond\n", entry.Content)
}

func TestParseLine_TrailingCommasBelongToContent(t *testing.T) {
	entry, ok := ParseLine("5,2023-06-01,Title,one,two,,")
	require.True(t, ok)
	assert.Equal(t, "one,two,,", entry.Content)
}

func TestParseLine_EmptyContent(t *testing.T) {
	entry, ok := ParseLine("6,2023-06-02,Title,")
	require.True(t, ok)
	assert.Equal(t, "", entry.Content)

	entry, ok = ParseLine(`7,2023-06-03,"Quoted",`)
	require.True(t, ok)
	assert.Equal(t, "Quoted", entry.Title)
	assert.Equal(t, "", entry.Content)
}

func TestParseLine_QuoteInsideUnquotedFieldIsLiteral(t *testing.T) {
	entry, ok := ParseLine(`8,2023-06-04,5" screen,it is 5" wide`)
	require.True(t, ok)
	assert.Equal(t, `5" screen`, entry.Title)
	assert.Equal(t, `it is 5" wide`, entry.Content)
}

func TestParseLine_TextAfterClosingQuoteStartsNextField(t *testing.T) {
	entry, ok := ParseLine(`9,"2023-06-05"Title,content`)
	require.True(t, ok)
	assert.Equal(t, "2023-06-05", entry.Date)
	assert.Equal(t, "Title", entry.Title)
	assert.Equal(t, "content", entry.Content)
}

func TestParseLine_Rejects(t *testing.T) {
	testCases := map[string]string{
		"empty line":        "",
		"too few fields":    "1,2023-01-01,Title",
		"only separators":   ",,",
		"non-numeric id":    "X,2023-01-02,B,world",
		"empty id":          ",2023-01-02,B,world",
		"id with garbage":   "12abc,2023-01-02,B,world",
		"quoted last short": `1,2023-01-01,"Title"`,
	}

	for name, line := range testCases {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseLine(line)
			assert.False(t, ok)
		})
	}
}

func TestParseLine_TruncatesOverlongFields(t *testing.T) {
	longTitle := strings.Repeat("t", models.MaxTitleLen+20)
	longContent := strings.Repeat("c", models.MaxContentLen+5)
	line := "1,2023-01-01," + longTitle + "," + longContent

	entry, ok := ParseLine(line)
	require.True(t, ok)
	assert.Len(t, entry.Title, models.MaxTitleLen)
	assert.Len(t, entry.Content, models.MaxContentLen)
}

func TestFormatLine(t *testing.T) {
	line := FormatLine(models.Entry{ID: 12, Date: "2023-03-22", Title: `A "Tricky" Entry`, Content: "a, b"})
	assert.Equal(t, `12,2023-03-22,"A ""Tricky"" Entry","a, b"`, line)
}

var delimiterPieces = []string{",", `"`, "\n", "\r", "a", "Z", " ", "é", `""`, ",,"}

func delimiterHeavyString() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(delimiterPieces)-1)).
		Map(func(idx []int) string {
			var sb strings.Builder
			for _, i := range idx {
				sb.WriteString(delimiterPieces[i])
			}
			return sb.String()
		})
}

func TestProperty_EscapeThenParseReturnsContent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("content survives escape and parse", prop.ForAll(
		func(s string) bool {
			entry, ok := ParseLine("1,2023-01-01,title," + EscapeField(s))
			return ok && entry.Content == models.Truncate(s, models.MaxContentLen)
		},
		delimiterHeavyString(),
	))

	properties.Property("arbitrary text survives escape and parse", prop.ForAll(
		func(s string) bool {
			entry, ok := ParseLine("1,2023-01-01,title," + EscapeField(s))
			return ok && entry.Content == models.Truncate(s, models.MaxContentLen)
		},
		gen.AnyString(),
	))

	properties.Property("every field survives FormatLine and ParseLine", prop.ForAll(
		func(id int, date, title, content string) bool {
			in := models.Entry{ID: id, Date: date, Title: title, Content: content}
			out, ok := ParseLine(FormatLine(in))
			if !ok {
				return false
			}
			want := models.Entry{
				ID:      id,
				Date:    models.Truncate(date, models.MaxDateLen),
				Title:   models.Truncate(title, models.MaxTitleLen),
				Content: models.Truncate(content, models.MaxContentLen),
			}
			if out != want {
				t.Logf("mismatch: %#v != %#v", out, want)
				return false
			}
			return true
		},
		gen.IntRange(1, 1<<20),
		delimiterHeavyString(),
		delimiterHeavyString(),
		delimiterHeavyString(),
	))

	properties.TestingRun(t)
}
