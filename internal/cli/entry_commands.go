package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/services"
)

// parseEntryID converts a command argument into an entry id
func parseEntryID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return 0, models.NewDiaryErrorWithCause(models.ErrTypeValidation, fmt.Sprintf("invalid entry id: %q", arg), err)
	}
	return id, nil
}

// createAddCommand creates the add command
func (a *App) createAddCommand() *cobra.Command {
	var date, title, content string
	var suggest bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a diary entry",
		Long:  "Add a diary entry. The date defaults to today and must not be in the future; only one entry per date is allowed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = a.now().Format(services.DateLayout)
			}
			if title == "" && suggest {
				suggested, err := a.titles.SuggestTitle(cmd.Context(), content)
				if err != nil {
					return err
				}
				title = suggested
			}

			entry, err := a.diary.AddEntry(date, title, content)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return a.outputJSON(entry)
			}

			a.success("Created entry: %d", entry.ID)
			a.printf("Date: %s\nTitle: %s\n", entry.Date, entry.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Entry date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&content, "content", "", "Entry content")
	cmd.Flags().BoolVar(&suggest, "suggest-title", false, "Derive the title from the content when --title is empty")

	return cmd
}

// createListCommand creates the list command
func (a *App) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.diary.ListEntries()

			if a.jsonOutput {
				return a.outputJSON(entries)
			}
			return a.outputEntryTable(entries)
		},
	}
}

// createShowCommand creates the show command
func (a *App) createShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			entry, err := a.diary.GetEntry(id)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return a.outputJSON(entry)
			}
			return a.outputEntryDetails(entry)
		},
	}
}

// createDeleteCommand creates the delete command
func (a *App) createDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			if err := a.diary.DeleteEntry(id); err != nil {
				return err
			}

			a.success("Deleted entry: %d", id)
			return nil
		},
	}
}

// createMoveCommand creates move-up and move-down
func (a *App) createMoveCommand(use, short string, move func(int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <entry-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			if err := move(id); err != nil {
				return err
			}

			if a.jsonOutput {
				return a.outputJSON(a.diary.ListEntries())
			}
			a.success("Moved entry: %d", id)
			return nil
		},
	}
}

// createDeleteAllCommand creates the delete-all command
func (a *App) createDeleteAllCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every entry and reset ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return models.NewDiaryError(models.ErrTypeValidation, "refusing to delete all entries without --yes")
			}

			removed := a.diary.DeleteAll()
			if a.jsonOutput {
				return a.outputJSON(map[string]int{"deleted": removed})
			}
			a.success("All entries have been deleted (%d removed).", removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting all entries")

	return cmd
}

// createEditCommand creates the edit command
func (a *App) createEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit an entry's content in your editor",
		Long:  "Open the entry's content in $VISUAL, $EDITOR or the configured editor and save the result back into the entry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			session, err := a.editor.Open(id)
			if err != nil {
				return err
			}
			if err := a.editor.Launch(cmd.Context(), session); err != nil {
				return err
			}

			summary, err := a.editor.Reload(session)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return a.outputJSON(summary)
			}
			if !summary.Changed {
				a.printf("No changes to entry %d\n", id)
				return nil
			}
			a.success("Entry updated and saved! (+%d -%d characters)", summary.Inserted, summary.Deleted)
			return nil
		},
	}
}

// createPopulateCommand creates the populate-samples command
func (a *App) createPopulateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "populate-samples",
		Short: "Add the built-in sample entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			added := a.diary.PopulateSamples()

			if a.jsonOutput {
				return a.outputJSON(map[string]int{"added": added})
			}
			a.success("Added %d sample entries.", added)
			return nil
		},
	}
}

// createSaveCommand creates the save command
func (a *App) createSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the diary file now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.diary.Save(); err != nil {
				return err
			}
			a.success("Data saved successfully!")
			return nil
		},
	}
}

// createSuggestTitleCommand creates the suggest-title command
func (a *App) createSuggestTitleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest-title <entry-id>",
		Short: "Suggest a title for an entry from its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			entry, err := a.diary.GetEntry(id)
			if err != nil {
				return err
			}

			title, err := a.titles.SuggestTitle(cmd.Context(), entry.Content)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return a.outputJSON(map[string]string{"title": title})
			}
			fmt.Fprintln(a.out, title)
			return nil
		},
	}
}
