package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zamm-dev/diary-mvp/internal/config"
)

// Version is reported by the version command
const Version = "0.1.0"

// createInitCommand creates the init command
func (a *App) createInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a diary in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			workingDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			written, err := config.WriteDefaultConfig(workingDir)
			if err != nil {
				return err
			}

			if a.storage.Exists() && !written {
				a.printf("diary is already initialized in %s\n", a.storage.Path())
				return nil
			}

			if !a.storage.Exists() {
				if err := a.diary.Save(); err != nil {
					return err
				}
			}

			a.success("Initialized diary successfully")
			a.printf("Config file: %s\n", config.ConfigPathIn(workingDir))
			a.printf("Diary file: %s\n", a.storage.Path())
			return nil
		},
	}
}

// statusReport is the JSON shape of the status command
type statusReport struct {
	StoragePath string `json:"storage_path"`
	Initialized bool   `json:"initialized"`
	EntryCount  int    `json:"entry_count"`
	Loaded      int    `json:"loaded"`
	Skipped     int    `json:"skipped"`
	Error       string `json:"error,omitempty"`
}

// createStatusCommand creates the status command
func (a *App) createStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show diary file status and statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := statusReport{
				StoragePath: a.storage.Path(),
				Initialized: a.storage.Exists(),
				EntryCount:  a.diary.Count(),
				Loaded:      a.loadReport.Loaded,
				Skipped:     a.loadReport.Skipped,
			}
			if a.loadErr != nil {
				status.Error = a.loadErr.Error()
			}

			if a.jsonOutput {
				return a.outputJSON(status)
			}

			fmt.Fprintf(a.out, "Diary Status\n")
			fmt.Fprintf(a.out, "============\n")
			if status.Initialized {
				fmt.Fprintf(a.out, "Storage: %s\n", status.StoragePath)
			} else {
				fmt.Fprintf(a.out, "Storage: %s (not initialized)\n", status.StoragePath)
			}
			fmt.Fprintf(a.out, "Entries: %d\n", status.EntryCount)
			if status.Skipped > 0 {
				fmt.Fprintf(a.out, "Skipped malformed records: %d\n", status.Skipped)
			}
			if status.Error != "" {
				fmt.Fprintf(a.out, "Error: %s\n", status.Error)
			}
			return nil
		},
	}
}

// createVersionCommand creates the version command
func (a *App) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "diary v%s\n", Version)
		},
	}
}
