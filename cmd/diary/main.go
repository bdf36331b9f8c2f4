package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/zamm-dev/diary-mvp/internal/cli"
	"github.com/zamm-dev/diary-mvp/internal/models"
)

func main() {
	os.Exit(run())
}

// run executes the command line and returns the process exit code. The app is
// closed before returning so the diary is saved on every exit path.
func run() int {
	app, err := cli.NewApp()
	if err != nil {
		handleError(err)
		return 2
	}

	rootCmd := app.CreateRootCommand()
	err = rootCmd.Execute()

	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		handleError(err)
		return getExitCode(err)
	}
	return 0
}

// handleError prints error messages in a user-friendly format
func handleError(err error) {
	red := color.New(color.FgRed)

	var diaryErr *models.DiaryError
	if errors.As(err, &diaryErr) {
		red.Fprintf(os.Stderr, "Error: %s\n", diaryErr.Message)
		if diaryErr.Details != "" {
			fmt.Fprintf(os.Stderr, "Details: %s\n", diaryErr.Details)
		}
		return
	}
	red.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

// getExitCode returns appropriate exit code based on error type
func getExitCode(err error) int {
	var diaryErr *models.DiaryError
	if errors.As(err, &diaryErr) {
		switch diaryErr.Type {
		case models.ErrTypeValidation, models.ErrTypeNotFound, models.ErrTypeConflict:
			return 1 // User error
		case models.ErrTypeStorage, models.ErrTypeSystem:
			return 2 // System error
		default:
			return 2
		}
	}
	return 2 // Default to system error
}
