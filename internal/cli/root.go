package cli

import (
	"github.com/spf13/cobra"
)

// CreateRootCommand creates the root command for the CLI
func (a *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "diary",
		Short:         "diary - a flat-file journal",
		Long:          "diary keeps dated journal entries in a single CSV file. Use the subcommands for scripting or `diary interactive` for the terminal UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Quiet output")

	// Add subcommands
	rootCmd.AddCommand(a.createAddCommand())
	rootCmd.AddCommand(a.createListCommand())
	rootCmd.AddCommand(a.createShowCommand())
	rootCmd.AddCommand(a.createDeleteCommand())
	rootCmd.AddCommand(a.createMoveCommand("move-up", "Move an entry one place up", a.diary.MoveUp))
	rootCmd.AddCommand(a.createMoveCommand("move-down", "Move an entry one place down", a.diary.MoveDown))
	rootCmd.AddCommand(a.createDeleteAllCommand())
	rootCmd.AddCommand(a.createEditCommand())
	rootCmd.AddCommand(a.createPopulateCommand())
	rootCmd.AddCommand(a.createSaveCommand())
	rootCmd.AddCommand(a.createSuggestTitleCommand())
	rootCmd.AddCommand(a.createExportCommand())
	rootCmd.AddCommand(a.createInitCommand())
	rootCmd.AddCommand(a.createStatusCommand())
	rootCmd.AddCommand(a.createVersionCommand())
	rootCmd.AddCommand(a.createInteractiveCommand())
	rootCmd.AddCommand(a.createMCPCommand())

	return rootCmd
}
