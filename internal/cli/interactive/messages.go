package interactive

import (
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/services"
)

// OperationCompleteMsg reports a finished diary operation. An empty Status
// shows nothing.
type OperationCompleteMsg struct {
	Status string
}

type EntryAddedMsg struct {
	Entry models.Entry
}

// EntryRejectedMsg keeps the form open with the validation message
type EntryRejectedMsg struct {
	Err error
}

type EditorFinishedMsg struct {
	Session *services.EditSession
	Err     error
}

type EntryReloadedMsg struct {
	Summary services.EditSummary
	Err     error
}

type StatusExpiredMsg struct {
	Seq int
}
