package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
	"github.com/zamm-dev/diary-mvp/internal/logging"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"go.uber.org/zap"
)

const (
	tempFilePrefix = "temp_entry_"
	tempFileSuffix = ".txt"
	fallbackEditor = "vi"
)

// EditSession tracks one entry's content while it is open in an external editor
type EditSession struct {
	EntryID  int
	Path     string
	Original string
}

// EditSummary describes what an editor round trip changed
type EditSummary struct {
	EntryID  int  `json:"entry_id"`
	Changed  bool `json:"changed"`
	Inserted int  `json:"inserted"` // characters added
	Deleted  int  `json:"deleted"`  // characters removed
}

// EditorService moves entry content through a temporary file so it can be
// edited with the user's own editor.
type EditorService struct {
	diary   DiaryService
	fs      afero.Fs
	tempDir string
	command string
	logger  *zap.Logger
	getenv  func(string) string
}

// EditorOption configures an editor service
type EditorOption func(*EditorService)

// WithEditorFs replaces the OS filesystem used for temporary files
func WithEditorFs(fs afero.Fs) EditorOption {
	return func(e *EditorService) {
		e.fs = fs
	}
}

// WithEditorLogger sets the logger
func WithEditorLogger(logger *zap.Logger) EditorOption {
	return func(e *EditorService) {
		e.logger = logger
	}
}

// WithEnv replaces the environment lookup used to find $VISUAL and $EDITOR
func WithEnv(getenv func(string) string) EditorOption {
	return func(e *EditorService) {
		e.getenv = getenv
	}
}

// NewEditorService creates an editor service writing into tempDir. command is
// the configured editor, used when neither $VISUAL nor $EDITOR is set.
func NewEditorService(diary DiaryService, tempDir, command string, opts ...EditorOption) *EditorService {
	e := &EditorService{
		diary:   diary,
		fs:      afero.NewOsFs(),
		tempDir: tempDir,
		command: command,
		logger:  zap.NewNop(),
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open writes the entry's content to a fresh temporary file
func (e *EditorService) Open(id int) (*EditSession, error) {
	entry, err := e.diary.GetEntry(id)
	if err != nil {
		return nil, err
	}

	if err := e.fs.MkdirAll(e.tempDir, 0755); err != nil {
		return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to create temp directory: %s", e.tempDir), err)
	}

	name := fmt.Sprintf("%s%d_%s%s", tempFilePrefix, entry.ID, uuid.New().String()[:8], tempFileSuffix)
	path := filepath.Join(e.tempDir, name)
	if err := afero.WriteFile(e.fs, path, []byte(entry.Content), 0600); err != nil {
		return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to write temp file: %s", path), err)
	}

	e.logger.Debug("opened entry for editing", zap.Int(logging.FieldEntryID, entry.ID), zap.String(logging.FieldPath, path))
	return &EditSession{
		EntryID:  entry.ID,
		Path:     path,
		Original: entry.Content,
	}, nil
}

// EditorCommand returns the editor invocation: $VISUAL, then $EDITOR, then the
// configured command, then vi. The result may contain arguments.
func (e *EditorService) EditorCommand() []string {
	for _, candidate := range []string{e.getenv("VISUAL"), e.getenv("EDITOR"), e.command} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	return []string{fallbackEditor}
}

// Command builds the process that edits the session's file. The caller wires
// stdio, so it can hand the terminal over from a TUI.
func (e *EditorService) Command(ctx context.Context, session *EditSession) *exec.Cmd {
	argv := append(e.EditorCommand(), session.Path)
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

// Launch runs the editor attached to the current terminal and waits for it
func (e *EditorService) Launch(ctx context.Context, session *EditSession) error {
	cmd := e.Command(ctx, session)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("editor %q failed", cmd.Path), err)
	}
	return nil
}

// Reload reads the edited file back into the entry and removes it. Content over
// the limit fails with ErrFieldTooLong and the file is kept so the user can
// trim it.
func (e *EditorService) Reload(session *EditSession) (EditSummary, error) {
	data, err := afero.ReadFile(e.fs, session.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EditSummary{}, models.NewDiaryErrorWithCause(models.ErrTypeNotFound, fmt.Sprintf("edited file was deleted: %s", session.Path), err)
		}
		return EditSummary{}, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to read edited file: %s", session.Path), err)
	}

	content := string(data)
	if len(content) > models.MaxContentLen {
		e.logger.Warn("edited content too long, keeping temp file",
			zap.Int(logging.FieldEntryID, session.EntryID), zap.String(logging.FieldPath, session.Path))
		return EditSummary{}, models.NewFieldTooLongError(models.FieldContent, len(content), models.MaxContentLen)
	}

	if _, err := e.diary.UpdateContent(session.EntryID, content); err != nil {
		return EditSummary{}, err
	}

	if err := e.fs.Remove(session.Path); err != nil {
		e.logger.Warn("failed to remove temp file", zap.String(logging.FieldPath, session.Path), zap.Error(err))
	}

	return Summarize(session.EntryID, session.Original, content), nil
}

// Summarize counts the characters inserted and deleted between two versions
func Summarize(id int, before, after string) EditSummary {
	summary := EditSummary{EntryID: id}
	if before == after {
		return summary
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			summary.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			summary.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	summary.Changed = true
	return summary
}

// CleanupTempFiles removes every leftover temporary entry file and returns how
// many were removed.
func (e *EditorService) CleanupTempFiles() (int, error) {
	matches, err := afero.Glob(e.fs, filepath.Join(e.tempDir, tempFilePrefix+"*"+tempFileSuffix))
	if err != nil {
		return 0, models.NewDiaryErrorWithCause(models.ErrTypeSystem, "failed to list temp files", err)
	}

	removed := 0
	for _, path := range matches {
		if err := e.fs.Remove(path); err != nil {
			e.logger.Warn("failed to remove temp file", zap.String(logging.FieldPath, path), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		e.logger.Debug("removed temp files", zap.Int(logging.FieldCount, removed))
	}
	return removed, nil
}
