package interactive

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"github.com/zamm-dev/diary-mvp/internal/cli/interactive/common"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/services"
)

const (
	dateColWidth    = 12
	titleColWidth   = 32
	previewColWidth = 40
)

// Config wires the model to the diary
type Config struct {
	Diary  services.DiaryService
	Editor Editor
	// Now defaults to time.Now
	Now func() time.Time
	// DebugWriter receives a spew dump of every message when set
	DebugWriter io.Writer
}

// Model is the root bubbletea model: the entries table with the new-entry form
// and confirmation dialogs layered on top
type Model struct {
	diary       services.DiaryService
	coordinator *Coordinator
	session     *Session
	entries     []models.Entry

	keys keyMap
	help help.Model

	width  int
	height int

	now         func() time.Time
	debugWriter io.Writer
}

func NewModel(cfg Config) *Model {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		diary:       cfg.Diary,
		coordinator: NewCoordinator(cfg.Diary, cfg.Editor),
		session:     NewSession(),
		keys:        keys,
		help:        help.New(),
		now:         now,
		debugWriter: cfg.DebugWriter,
	}
	m.refresh()
	return m
}

// Session exposes the UI state, mainly for tests
func (m *Model) Session() *Session {
	return m.session
}

// Entries returns the entries as last displayed
func (m *Model) Entries() []models.Entry {
	return m.entries
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.debugWriter != nil {
		spew.Fdump(m.debugWriter, msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.session.Form != nil {
			m.session.Form.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case StatusExpiredMsg:
		m.session.ExpireStatus(msg.Seq)
		return m, nil

	case common.EntryFormSubmitMsg:
		return m, m.coordinator.AddEntryCmd(msg.Date, msg.Title, msg.Content)

	case common.EntryFormCancelMsg:
		m.session.Form = nil
		return m, nil

	case EntryAddedMsg:
		m.session.Form = nil
		m.refresh()
		return m, m.setStatus(StatusEntryCreated)

	case EntryRejectedMsg:
		if m.session.Form != nil {
			m.session.Form.SetError(userMessage(msg.Err))
		}
		return m, nil

	case common.ConfirmationAcceptedMsg:
		m.session.Confirm = nil
		m.session.PendingDeleteID = NoSelection
		switch msg.Action {
		case common.ConfirmDeleteEntry:
			return m, m.coordinator.DeleteEntryCmd(msg.TargetID)
		case common.ConfirmDeleteAll:
			return m, m.coordinator.DeleteAllCmd()
		}
		return m, nil

	case common.ConfirmationCancelledMsg:
		m.session.Confirm = nil
		m.session.PendingDeleteID = NoSelection
		return m, m.setStatus(StatusDeleteCanceled)

	case OperationCompleteMsg:
		m.refresh()
		if msg.Status == "" {
			return m, nil
		}
		return m, m.setStatus(msg.Status)

	case EditorFinishedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Error: editor failed: %v", msg.Err))
		}
		return m, tea.Batch(m.setStatus(StatusEditorClosed), m.coordinator.ReloadCmd(msg.Session))

	case EntryReloadedMsg:
		m.refresh()
		if msg.Err != nil {
			return m, m.setStatus(StatusReloadFailed)
		}
		return m, m.setStatus(StatusEntryReloaded)

	case tea.KeyMsg:
		if m.session.Form != nil {
			_, cmd := m.session.Form.Update(msg)
			return m, cmd
		}
		if m.session.Confirm != nil {
			_, cmd := m.session.Confirm.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	// Cursor blinks and the like belong to the form
	if m.session.Form != nil {
		_, cmd := m.session.Form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		s.ShowHelp = !s.ShowHelp
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Deselect):
		s.Deselect()
	case key.Matches(msg, m.keys.New):
		s.Form = common.NewEntryForm(m.now().Format(services.DateLayout))
		s.Form.SetSize(m.width, m.height)
		return m, s.Form.Init()
	case key.Matches(msg, m.keys.MoveUp):
		if s.HasSelection() && m.diary.CanMoveUp(s.SelectedID) {
			return m, m.coordinator.MoveUpCmd(s.SelectedID)
		}
	case key.Matches(msg, m.keys.MoveDown):
		if s.HasSelection() && m.diary.CanMoveDown(s.SelectedID) {
			return m, m.coordinator.MoveDownCmd(s.SelectedID)
		}
	case key.Matches(msg, m.keys.Delete):
		if s.HasSelection() {
			entry := m.entries[s.SelectedIndex]
			s.PendingDeleteID = entry.ID
			s.Confirm = common.NewConfirmationDialog(common.ConfirmationDialogConfig{
				Action:      common.ConfirmDeleteEntry,
				TargetID:    entry.ID,
				TargetTitle: entry.Title,
			})
		}
	case key.Matches(msg, m.keys.DeleteAll):
		s.Confirm = common.NewConfirmationDialog(common.ConfirmationDialogConfig{
			Action: common.ConfirmDeleteAll,
		})
	case key.Matches(msg, m.keys.Save):
		return m, m.coordinator.SaveCmd()
	case key.Matches(msg, m.keys.Populate):
		return m, m.coordinator.PopulateCmd()
	case key.Matches(msg, m.keys.EditExtern):
		if s.HasSelection() {
			return m, m.coordinator.EditCmd(s.SelectedID)
		}
	}
	return m, nil
}

// moveCursor steps the selection. With nothing selected the first entry is
// picked.
func (m *Model) moveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}
	if !m.session.HasSelection() {
		m.session.Select(m.entries[0].ID, 0)
		return
	}
	idx := m.session.SelectedIndex + delta
	if idx < 0 || idx >= len(m.entries) {
		return
	}
	m.session.Select(m.entries[idx].ID, idx)
}

// refresh reloads the entries and re-derives the selected index from the
// selected id. A selection whose entry is gone is cleared.
func (m *Model) refresh() {
	m.entries = m.diary.ListEntries()
	if !m.session.HasSelection() {
		return
	}
	for i, entry := range m.entries {
		if entry.ID == m.session.SelectedID {
			m.session.SelectedIndex = i
			return
		}
	}
	m.session.Deselect()
}

func (m *Model) setStatus(status string) tea.Cmd {
	seq := m.session.SetStatus(status, m.now())
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

func (m *Model) View() string {
	if m.session.Form != nil {
		return m.session.Form.View()
	}

	background := m.listView()
	if m.session.Confirm != nil {
		// The background must be at least as large as the dialog
		dialog := m.session.Confirm.View()
		width := max(m.width, lipgloss.Width(background), lipgloss.Width(dialog))
		height := max(m.height, lipgloss.Height(background), lipgloss.Height(dialog))
		background = lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, background)
		return overlay.New(
			m.session.Confirm,
			staticView(background),
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	}
	return background
}

func (m *Model) listView() string {
	var b strings.Builder

	b.WriteString(common.HeaderStyle().Render(fmt.Sprintf("Diary (%d entries)", len(m.entries))))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(common.DimStyle().Render("No entries yet. Press n to write one or p to add samples."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-*s %-*s %s", dateColWidth, "Date", titleColWidth, "Title", "Preview")
		b.WriteString(common.DimStyle().Render(header))
		b.WriteString("\n")
		for i, entry := range m.entries {
			b.WriteString(m.renderRow(i, entry))
			b.WriteString("\n")
		}
	}

	if status := m.session.ActiveStatus(m.now()); status != "" {
		b.WriteString("\n")
		if strings.HasPrefix(status, "Error") {
			b.WriteString(common.ErrorStyle().Render(status))
		} else {
			b.WriteString(common.StatusStyle().Render(status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.session.ShowHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m *Model) renderRow(index int, entry models.Entry) string {
	row := fmt.Sprintf("%-*s %-*s %s",
		dateColWidth, clip(entry.Date, dateColWidth),
		titleColWidth, clip(entry.Title, titleColWidth),
		clip(Preview(entry.Content), previewColWidth))

	if index == m.session.SelectedIndex {
		return "> " + common.SelectedRowStyle().Render(row)
	}
	return "  " + row
}

// Preview returns the first non-blank line of content
func Preview(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// clip shortens s to width cells, marking the cut with an ellipsis
func clip(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// userMessage extracts the message a DiaryError carries for display
func userMessage(err error) string {
	var de *models.DiaryError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// staticView renders a fixed string as the overlay background
type staticView string

func (v staticView) Init() tea.Cmd                       { return nil }
func (v staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v staticView) View() string                        { return string(v) }
