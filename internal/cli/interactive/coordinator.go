package interactive

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/services"
)

// Status messages shown after operations
const (
	StatusEntryCreated   = "New entry created successfully."
	StatusEntryDeleted   = "Entry successfully deleted!"
	StatusDeleteCanceled = "Deletion canceled."
	StatusAllDeleted     = "All entries have been deleted."
	StatusSaved          = "Data saved successfully!"
	StatusEditorClosed   = "External editor closed."
	StatusEntryReloaded  = "Entry updated and saved!"
	StatusReloadFailed   = "Error: Content too long or file was deleted."
)

// Editor runs the external editor round trip for one entry
type Editor interface {
	Open(id int) (*services.EditSession, error)
	Command(ctx context.Context, session *services.EditSession) *exec.Cmd
	Reload(session *services.EditSession) (services.EditSummary, error)
}

// Coordinator turns UI intents into commands against the diary service
type Coordinator struct {
	diary  services.DiaryService
	editor Editor
}

func NewCoordinator(diary services.DiaryService, editor Editor) *Coordinator {
	return &Coordinator{
		diary:  diary,
		editor: editor,
	}
}

func (c *Coordinator) AddEntryCmd(date, title, content string) tea.Cmd {
	return func() tea.Msg {
		entry, err := c.diary.AddEntry(date, title, content)
		if err != nil {
			return EntryRejectedMsg{Err: err}
		}
		return EntryAddedMsg{Entry: entry}
	}
}

func (c *Coordinator) DeleteEntryCmd(id int) tea.Cmd {
	return func() tea.Msg {
		if err := c.diary.DeleteEntry(id); err != nil {
			return OperationCompleteMsg{Status: errorStatus(err)}
		}
		return OperationCompleteMsg{Status: StatusEntryDeleted}
	}
}

func (c *Coordinator) DeleteAllCmd() tea.Cmd {
	return func() tea.Msg {
		c.diary.DeleteAll()
		return OperationCompleteMsg{Status: StatusAllDeleted}
	}
}

// MoveUpCmd swaps the entry with its predecessor. Moving past the top is a
// silent no-op.
func (c *Coordinator) MoveUpCmd(id int) tea.Cmd {
	return c.moveCmd(id, c.diary.MoveUp)
}

func (c *Coordinator) MoveDownCmd(id int) tea.Cmd {
	return c.moveCmd(id, c.diary.MoveDown)
}

func (c *Coordinator) moveCmd(id int, move func(int) error) tea.Cmd {
	return func() tea.Msg {
		if err := move(id); err != nil && !errors.Is(err, models.ErrAtBoundary) {
			return OperationCompleteMsg{Status: errorStatus(err)}
		}
		return OperationCompleteMsg{}
	}
}

func (c *Coordinator) SaveCmd() tea.Cmd {
	return func() tea.Msg {
		if err := c.diary.Save(); err != nil {
			return OperationCompleteMsg{Status: errorStatus(err)}
		}
		return OperationCompleteMsg{Status: StatusSaved}
	}
}

func (c *Coordinator) PopulateCmd() tea.Cmd {
	return func() tea.Msg {
		added := c.diary.PopulateSamples()
		return OperationCompleteMsg{Status: fmt.Sprintf("Added %d sample entries.", added)}
	}
}

// EditCmd writes the entry to a temp file and hands the terminal to the
// external editor. Bubbletea resumes with an EditorFinishedMsg.
func (c *Coordinator) EditCmd(id int) tea.Cmd {
	session, err := c.editor.Open(id)
	if err != nil {
		return func() tea.Msg {
			return OperationCompleteMsg{Status: errorStatus(err)}
		}
	}

	cmd := c.editor.Command(context.Background(), session)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditorFinishedMsg{Session: session, Err: err}
	})
}

// ReloadCmd reads the edited temp file back into the entry
func (c *Coordinator) ReloadCmd(session *services.EditSession) tea.Cmd {
	return func() tea.Msg {
		summary, err := c.editor.Reload(session)
		return EntryReloadedMsg{Summary: summary, Err: err}
	}
}

func errorStatus(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
