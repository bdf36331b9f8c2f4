package common

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmAction names the operation a dialog guards
type ConfirmAction string

const (
	ConfirmDeleteEntry ConfirmAction = "delete_entry"
	ConfirmDeleteAll   ConfirmAction = "delete_all"
)

type ConfirmationDialogConfig struct {
	Action      ConfirmAction
	TargetID    int    // entry being deleted, unused for delete_all
	TargetTitle string // shown to the user
}

type ConfirmationAcceptedMsg struct {
	Action   ConfirmAction
	TargetID int
}

type ConfirmationCancelledMsg struct {
	Action ConfirmAction
}

// ConfirmationDialog asks for a y/n answer before a destructive action
type ConfirmationDialog struct {
	config ConfirmationDialogConfig
}

// NewConfirmationDialog creates a new confirmation dialog component
func NewConfirmationDialog(config ConfirmationDialogConfig) *ConfirmationDialog {
	return &ConfirmationDialog{
		config: config,
	}
}

// Config returns what the dialog was opened for
func (d *ConfirmationDialog) Config() ConfirmationDialogConfig {
	return d.config
}

// Init initializes the confirmation dialog
func (d *ConfirmationDialog) Init() tea.Cmd {
	return nil
}

// Update handles tea messages and updates the component
func (d *ConfirmationDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			return d, func() tea.Msg {
				return ConfirmationAcceptedMsg{
					Action:   d.config.Action,
					TargetID: d.config.TargetID,
				}
			}
		case "n", "N", "esc":
			return d, func() tea.Msg {
				return ConfirmationCancelledMsg{Action: d.config.Action}
			}
		}
	}
	return d, nil
}

// View renders the confirmation dialog
func (d *ConfirmationDialog) View() string {
	var title, body string

	switch d.config.Action {
	case ConfirmDeleteAll:
		title = ErrorStyle().Bold(true).Render("WARNING: This is permanent!")
		body = "Are you sure you want to delete ALL diary entries?\nThis action cannot be undone."
	default:
		title = ErrorStyle().Bold(true).Render("Confirm Deletion")
		body = fmt.Sprintf("Are you sure you want to permanently delete '%s'?", d.config.TargetTitle)
	}

	layout := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		"Press 'y' to confirm, 'n' or Esc to cancel",
	)
	return DialogStyle().Render(layout)
}
