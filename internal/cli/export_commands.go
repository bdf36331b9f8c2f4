package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zamm-dev/diary-mvp/internal/csvcodec"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// createExportCommand creates the export command
func (a *App) createExportCommand() *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries",
		Long:  "Write every entry in display order as JSON, YAML or diary CSV, to stdout or a file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return a.runExport(a.out, format)
			}

			file, err := os.Create(outputPath)
			if err != nil {
				return models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to create export file: %s", outputPath), err)
			}
			defer file.Close()

			if err := a.runExport(file, format); err != nil {
				return err
			}
			a.success("Exported %d entries to %s", a.diary.Count(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "Export format (json, yaml or csv)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")

	return cmd
}

// runExport writes the entries to w in the given format
func (a *App) runExport(w io.Writer, format string) error {
	entries := a.diary.ListEntries()

	switch format {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatCSV:
		return writeCSV(w, entries)
	default:
		return models.NewDiaryError(models.ErrTypeValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
}

// writeCSV writes the entries in the diary file format
func writeCSV(w io.Writer, entries []models.Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, csvcodec.Header)
	for _, entry := range entries {
		fmt.Fprintln(bw, csvcodec.FormatLine(entry))
	}
	return bw.Flush()
}
