package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/zamm-dev/diary-mvp/internal/cli/interactive"
	"github.com/zamm-dev/diary-mvp/internal/models"
)

const (
	maxTitleWidth   = 40
	maxPreviewWidth = 50
)

// Output formatting helpers

func (a *App) outputJSON(data interface{}) error {
	return writeJSON(a.out, data)
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printf writes unless --quiet is set
func (a *App) printf(format string, args ...interface{}) {
	if a.quiet {
		return
	}
	fmt.Fprintf(a.out, format, args...)
}

// success prints a confirmation line in green unless --quiet is set
func (a *App) success(format string, args ...interface{}) {
	if a.quiet {
		return
	}
	color.New(color.FgGreen).Fprintf(a.out, format+"\n", args...)
}

func (a *App) outputEntryTable(entries []models.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tPREVIEW")

	for _, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			entry.ID,
			entry.Date,
			shorten(entry.Title, maxTitleWidth),
			shorten(interactive.Preview(entry.Content), maxPreviewWidth),
		)
	}

	return w.Flush()
}

func (a *App) outputEntryDetails(entry models.Entry) error {
	fmt.Fprintf(a.out, "ID: %d\n", entry.ID)
	fmt.Fprintf(a.out, "Date: %s\n", entry.Date)
	fmt.Fprintf(a.out, "Title: %s\n", entry.Title)
	fmt.Fprintf(a.out, "\nContent:\n%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(a.out, "%s\n", entry.Content)
	return nil
}

func shorten(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
