package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zamm-dev/diary-mvp/internal/cli/interactive"
)

// createInteractiveCommand creates the interactive mode command
func (a *App) createInteractiveCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Browse and edit the diary in a terminal UI",
		Long:  "Start an interactive session: arrow keys select, n writes a new entry, e opens the selected entry in your editor, ? shows all keys.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var debugWriter io.Writer
			if debug {
				file, err := a.openDebugLog()
				if err != nil {
					return err
				}
				defer file.Close()
				fmt.Fprintf(os.Stderr, "Debug messages are written to %s\n", file.Name())
				debugWriter = file
			}
			return a.runInteractiveMode(debugWriter)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Dump every UI message to a debug log file")

	return cmd
}

// runInteractiveMode starts the interactive mode with TUI
func (a *App) runInteractiveMode(debugWriter io.Writer) error {
	model := interactive.NewModel(interactive.Config{
		Diary:       a.diary,
		Editor:      a.editor,
		Now:         a.now,
		DebugWriter: debugWriter,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
