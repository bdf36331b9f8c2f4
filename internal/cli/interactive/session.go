package interactive

import (
	"time"

	"github.com/zamm-dev/diary-mvp/internal/cli/interactive/common"
)

// StatusDuration is how long a status message stays on screen
const StatusDuration = 3 * time.Second

// NoSelection marks an empty selection
const NoSelection = -1

// Session holds the per-run UI state. It is owned by the Model and mutated only
// from its Update step.
type Session struct {
	SelectedID    int
	SelectedIndex int

	// PendingDeleteID is the entry awaiting confirmation, NoSelection otherwise
	PendingDeleteID int

	Form    *common.EntryForm
	Confirm *common.ConfirmationDialog

	Status      string
	StatusUntil time.Time
	statusSeq   int

	ShowHelp bool
}

func NewSession() *Session {
	return &Session{
		SelectedID:      NoSelection,
		SelectedIndex:   NoSelection,
		PendingDeleteID: NoSelection,
	}
}

func (s *Session) Select(id, index int) {
	s.SelectedID = id
	s.SelectedIndex = index
}

func (s *Session) Deselect() {
	s.SelectedID = NoSelection
	s.SelectedIndex = NoSelection
}

func (s *Session) HasSelection() bool {
	return s.SelectedID != NoSelection
}

// SetStatus shows msg until now+StatusDuration and returns a sequence number
// identifying this message for ExpireStatus.
func (s *Session) SetStatus(msg string, now time.Time) int {
	s.statusSeq++
	s.Status = msg
	s.StatusUntil = now.Add(StatusDuration)
	return s.statusSeq
}

// ExpireStatus clears the status if seq still names the current message. A
// newer message is left alone.
func (s *Session) ExpireStatus(seq int) bool {
	if seq != s.statusSeq || s.Status == "" {
		return false
	}
	s.Status = ""
	s.StatusUntil = time.Time{}
	return true
}

// ActiveStatus returns the status message if it has not yet expired
func (s *Session) ActiveStatus(now time.Time) string {
	if s.Status == "" || !now.Before(s.StatusUntil) {
		return ""
	}
	return s.Status
}
