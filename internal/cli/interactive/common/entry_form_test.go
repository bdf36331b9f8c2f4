package common

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForOutput(t *testing.T, tm *teatest.TestModel, waitFor []byte) {
	t.Helper()
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, waitFor)
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*3),
	)
}

// press feeds keys to the form, dropping the cursor blink commands typing produces
func press(form *EntryForm, msgs ...tea.Msg) {
	for _, msg := range msgs {
		_, _ = form.Update(msg)
	}
}

// final feeds one key and runs the command it returns
func final(form *EntryForm, msg tea.Msg) tea.Msg {
	_, cmd := form.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEntryFormSubmitCarriesAllFields(t *testing.T) {
	form := NewEntryForm("2024-06-15")

	press(form,
		tea.KeyMsg{Type: tea.KeyTab},
		runes("Walk"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("line one"),
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("line two"),
	)
	out := final(form, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, EntryFormSubmitMsg{Date: "2024-06-15", Title: "Walk", Content: "line one\nline two"}, out)
}

func TestEntryFormEnterAdvancesFromSingleLineFields(t *testing.T) {
	form := NewEntryForm("")
	press(form, runes("2024-01-01"), tea.KeyMsg{Type: tea.KeyEnter}, runes("Title"))

	date, title, _ := form.Values()
	assert.Equal(t, "2024-01-01", date)
	assert.Equal(t, "Title", title)
}

func TestEntryFormShiftTabWrapsAround(t *testing.T) {
	form := NewEntryForm("")
	press(form, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("body"))

	_, _, content := form.Values()
	assert.Equal(t, "body", content)
}

func TestEntryFormEscWithoutChangesCancels(t *testing.T) {
	form := NewEntryForm("2024-06-15")
	out := final(form, tea.KeyMsg{Type: tea.KeyEsc})

	assert.IsType(t, EntryFormCancelMsg{}, out)
}

func TestEntryFormEscWithChangesShowsPrompt(t *testing.T) {
	form := NewEntryForm("2024-06-15")
	tm := teatest.NewTestModel(t, form, teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(runes("X"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	waitForOutput(t, tm, []byte("Unsaved Entry"))
}

func TestEntryFormPressNToDismissPrompt(t *testing.T) {
	form := NewEntryForm("2024-06-15")
	tm := teatest.NewTestModel(t, form, teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(runes("Draft"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(runes("n"))

	// Typing again proves the form has focus back
	tm.Send(runes("Z"))

	waitForOutput(t, tm, []byte("DraftZ"))
}

func TestEntryFormDiscardConfirmed(t *testing.T) {
	form := NewEntryForm("")
	press(form, runes("2024"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ShowingDiscardPrompt, form.State())

	assert.IsType(t, EntryFormCancelMsg{}, final(form, runes("y")))
}

func TestEntryFormDiscardDismissed(t *testing.T) {
	form := NewEntryForm("")
	press(form, runes("2024"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ShowingDiscardPrompt, form.State())

	assert.Nil(t, final(form, runes("n")))
	assert.Equal(t, Editing, form.State())
}

func TestEntryFormShowsError(t *testing.T) {
	form := NewEntryForm("2024-06-15")
	form.SetSize(80, 24)
	form.SetError("Title cannot be empty.")

	assert.Equal(t, "Title cannot be empty.", form.Error())
	assert.Contains(t, form.View(), "Error: Title cannot be empty.")
}
