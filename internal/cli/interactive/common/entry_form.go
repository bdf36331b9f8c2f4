package common

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"github.com/zamm-dev/diary-mvp/internal/models"
)

// FormField identifies the focused input
type FormField int

const (
	FieldDate FormField = iota
	FieldTitle
	FieldContent
	fieldCount
)

const formTitle = "New Diary Entry"

// EntryFormSubmitMsg carries the form values when the user saves
type EntryFormSubmitMsg struct {
	Date    string
	Title   string
	Content string
}

// EntryFormCancelMsg is sent when the user leaves the form without saving
type EntryFormCancelMsg struct{}

// baseEntryForm holds the inputs without overlay management
type baseEntryForm struct {
	focus        FormField
	dateInput    textinput.Model
	titleInput   textinput.Model
	contentInput textarea.Model
	err          string
	width        int
	height       int

	initialDate string
}

func newBaseEntryForm(initialDate string) baseEntryForm {
	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = models.MaxDateLen
	dateInput.SetValue(initialDate)
	dateInput.Focus()

	titleInput := textinput.New()
	titleInput.Placeholder = "Enter entry title"
	titleInput.CharLimit = models.MaxTitleLen

	contentInput := textarea.New()
	contentInput.Placeholder = "Write your entry..."
	contentInput.CharLimit = models.MaxContentLen
	contentInput.ShowLineNumbers = false
	contentInput.Focus()
	contentInput.Blur()

	return baseEntryForm{
		focus:        FieldDate,
		dateInput:    dateInput,
		titleInput:   titleInput,
		contentInput: contentInput,
		initialDate:  initialDate,
	}
}

func (f baseEntryForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *baseEntryForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.dateInput.Width = max(width-4, 10)
	f.titleInput.Width = max(width-4, 10)
}

func (f *baseEntryForm) setFocus(field FormField) {
	f.focus = field
	f.dateInput.Blur()
	f.titleInput.Blur()
	f.contentInput.Blur()
	switch field {
	case FieldDate:
		f.dateInput.Focus()
	case FieldTitle:
		f.titleInput.Focus()
	case FieldContent:
		f.contentInput.Focus()
	}
}

func (f *baseEntryForm) hasChanges() bool {
	return strings.TrimSpace(f.dateInput.Value()) != f.initialDate ||
		strings.TrimSpace(f.titleInput.Value()) != "" ||
		f.contentInput.Value() != ""
}

func (f baseEntryForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyTab:
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case tea.KeyShiftTab:
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		case tea.KeyEnter:
			// Enter advances from single-line inputs; the content box takes newlines
			if f.focus != FieldContent {
				f.setFocus(f.focus + 1)
				return f, nil
			}
		case tea.KeyCtrlS:
			submit := EntryFormSubmitMsg{
				Date:    f.dateInput.Value(),
				Title:   f.titleInput.Value(),
				Content: f.contentInput.Value(),
			}
			return f, func() tea.Msg { return submit }
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case FieldDate:
		f.dateInput, cmd = f.dateInput.Update(msg)
	case FieldTitle:
		f.titleInput, cmd = f.titleInput.Update(msg)
	case FieldContent:
		f.contentInput, cmd = f.contentInput.Update(msg)
	}
	return f, cmd
}

func (f baseEntryForm) View() string {
	f.contentInput.SetWidth(max(f.width-4, 20))
	f.contentInput.SetHeight(max(f.height-14, 3))

	label := func(field FormField, text string) string {
		if f.focus == field {
			return HighlightStyle().Render(text)
		}
		return text
	}

	var sb strings.Builder
	sb.WriteString(formTitle + "\n")
	sb.WriteString(strings.Repeat("=", len(formTitle)) + "\n\n")

	sb.WriteString(label(FieldDate, "Date (YYYY-MM-DD)") + "\n")
	sb.WriteString(f.dateInput.View() + "\n\n")
	sb.WriteString(label(FieldTitle, "Title") + "\n")
	sb.WriteString(f.titleInput.View() + "\n\n")
	sb.WriteString(label(FieldContent, "Content") + "\n")
	sb.WriteString(f.contentInput.View() + "\n\n")

	if f.err != "" {
		sb.WriteString(ErrorStyle().Render("Error: "+f.err) + "\n")
	}
	sb.WriteString(DimStyle().Render("Tab/Shift+Tab to switch fields, Ctrl+S to save, Esc to cancel"))

	return sb.String()
}

// EntryFormState represents the current state of the form
type EntryFormState int

const (
	Editing EntryFormState = iota
	ShowingDiscardPrompt
)

// discardPrompt asks before throwing away typed input
type discardPrompt struct{}

func (discardPrompt) Init() tea.Cmd { return nil }

// Update is a no-op; EntryForm answers the prompt's keys itself
func (p discardPrompt) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }

func (discardPrompt) View() string {
	title := ErrorStyle().Bold(true).Render("Unsaved Entry")
	content := "This entry has not been saved.\n\nPress 'y' to discard it, 'n' to continue editing"
	return DialogStyle().Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content))
}

// EntryForm collects a new entry and guards against losing typed input
type EntryForm struct {
	state  EntryFormState
	base   baseEntryForm
	prompt discardPrompt
}

// NewEntryForm creates a form with the date field prefilled
func NewEntryForm(initialDate string) *EntryForm {
	return &EntryForm{
		state: Editing,
		base:  newBaseEntryForm(initialDate),
	}
}

// Init initializes the form
func (f *EntryForm) Init() tea.Cmd {
	return f.base.Init()
}

// SetSize sets the dimensions of the form
func (f *EntryForm) SetSize(width, height int) {
	f.base.SetSize(width, height)
}

// SetError shows a validation failure under the inputs
func (f *EntryForm) SetError(message string) {
	f.base.err = message
}

// Error returns the validation failure currently shown
func (f *EntryForm) Error() string {
	return f.base.err
}

// State reports whether the discard prompt is showing
func (f *EntryForm) State() EntryFormState {
	return f.state
}

// Values returns the raw input values
func (f *EntryForm) Values() (date, title, content string) {
	return f.base.dateInput.Value(), f.base.titleInput.Value(), f.base.contentInput.Value()
}

// Update handles tea messages and updates the component
func (f *EntryForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.SetSize(msg.Width, msg.Height)
		return f, nil
	case tea.KeyMsg:
		// While the discard prompt shows, handle y/n/esc directly
		if f.state == ShowingDiscardPrompt {
			switch msg.String() {
			case "y", "Y":
				return f, func() tea.Msg { return EntryFormCancelMsg{} }
			case "n", "N", "esc":
				f.state = Editing
			}
			return f, nil
		}

		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC {
			if f.base.hasChanges() {
				f.state = ShowingDiscardPrompt
				return f, nil
			}
			return f, func() tea.Msg { return EntryFormCancelMsg{} }
		}
	}

	base, cmd := f.base.Update(msg)
	if updated, ok := base.(baseEntryForm); ok {
		f.base = updated
	}
	return f, cmd
}

// View renders the form, with the discard prompt on top when it is showing
func (f *EntryForm) View() string {
	if f.state == ShowingDiscardPrompt {
		return overlay.New(
			f.prompt,
			f.base,
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	}
	return f.base.View()
}
