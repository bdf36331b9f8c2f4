package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/storage"
)

const testTempDir = "/diary/tmp"

func setupEditor(t *testing.T, env map[string]string) (*EditorService, DiaryService, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	diary := NewDiaryService(storage.NewFileStorageWithFs(fs, testDiaryPath), WithClock(fixedClock("2024-06-15")))
	_, err := diary.Load()
	require.NoError(t, err)

	editor := NewEditorService(diary, testTempDir, "nano -w",
		WithEditorFs(fs),
		WithEnv(func(key string) string { return env[key] }))
	return editor, diary, fs
}

func TestEditorService_OpenWritesContent(t *testing.T) {
	editor, diary, fs := setupEditor(t, nil)
	_, err := diary.AddEntry("2024-01-01", "t", "original text")
	require.NoError(t, err)

	session, err := editor.Open(1)
	require.NoError(t, err)

	assert.Equal(t, 1, session.EntryID)
	assert.Equal(t, testTempDir, filepath.Dir(session.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(session.Path), "temp_entry_1_"))
	assert.True(t, strings.HasSuffix(session.Path, ".txt"))

	data, err := afero.ReadFile(fs, session.Path)
	require.NoError(t, err)
	assert.Equal(t, "original text", string(data))

	again, err := editor.Open(1)
	require.NoError(t, err)
	assert.NotEqual(t, session.Path, again.Path, "every session gets its own file")

	_, err = editor.Open(7)
	assert.True(t, errors.Is(err, models.ErrEntryNotFound))
}

func TestEditorService_ReloadUpdatesEntry(t *testing.T) {
	editor, diary, fs := setupEditor(t, nil)
	_, err := diary.AddEntry("2024-01-01", "t", "hello world")
	require.NoError(t, err)

	session, err := editor.Open(1)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, session.Path, []byte("hello brave world\nsecond line"), 0600))

	summary, err := editor.Reload(session)
	require.NoError(t, err)
	assert.True(t, summary.Changed)
	assert.Equal(t, 1, summary.EntryID)
	assert.Equal(t, len(" brave")+len("\nsecond line"), summary.Inserted)
	assert.Equal(t, 0, summary.Deleted)

	entry, _ := diary.GetEntry(1)
	assert.Equal(t, "hello brave world\nsecond line", entry.Content)

	exists, err := afero.Exists(fs, session.Path)
	require.NoError(t, err)
	assert.False(t, exists, "temp file removed after a successful reload")

	onDisk, err := afero.ReadFile(fs, testDiaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(onDisk), "\"hello brave world\nsecond line\"")
}

func TestEditorService_ReloadTooLongKeepsFile(t *testing.T) {
	editor, diary, fs := setupEditor(t, nil)
	_, err := diary.AddEntry("2024-01-01", "t", "short")
	require.NoError(t, err)

	session, err := editor.Open(1)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, session.Path, []byte(strings.Repeat("a", models.MaxContentLen+1)), 0600))

	_, err = editor.Reload(session)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrFieldTooLong))

	exists, _ := afero.Exists(fs, session.Path)
	assert.True(t, exists, "temp file kept so the user can trim it")
	entry, _ := diary.GetEntry(1)
	assert.Equal(t, "short", entry.Content)
}

func TestEditorService_ReloadExactlyAtLimit(t *testing.T) {
	editor, diary, fs := setupEditor(t, nil)
	_, err := diary.AddEntry("2024-01-01", "t", "")
	require.NoError(t, err)

	session, err := editor.Open(1)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, session.Path, []byte(strings.Repeat("a", models.MaxContentLen)), 0600))

	_, err = editor.Reload(session)
	assert.NoError(t, err)
}

func TestEditorService_ReloadDeletedFile(t *testing.T) {
	editor, diary, fs := setupEditor(t, nil)
	_, err := diary.AddEntry("2024-01-01", "t", "keep")
	require.NoError(t, err)

	session, err := editor.Open(1)
	require.NoError(t, err)
	require.NoError(t, fs.Remove(session.Path))

	_, err = editor.Reload(session)
	assert.True(t, models.IsType(err, models.ErrTypeNotFound))
}

func TestEditorService_EditorCommand(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		command  string
		expected []string
	}{
		{"visual wins", map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}, "nano", []string{"code", "--wait"}},
		{"editor next", map[string]string{"EDITOR": "vim"}, "nano", []string{"vim"}},
		{"configured command", nil, "nano -w", []string{"nano", "-w"}},
		{"blank values skipped", map[string]string{"VISUAL": "  "}, "", []string{"vi"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.env
			editor := NewEditorService(nil, testTempDir, tc.command, WithEnv(func(key string) string { return env[key] }))
			assert.Equal(t, tc.expected, editor.EditorCommand())
		})
	}
}

func TestEditorService_Command(t *testing.T) {
	editor, _, _ := setupEditor(t, map[string]string{"EDITOR": "true --flag"})

	cmd := editor.Command(context.Background(), &EditSession{Path: "/diary/tmp/temp_entry_1_x.txt"})
	assert.Equal(t, []string{"true", "--flag", "/diary/tmp/temp_entry_1_x.txt"}, cmd.Args)
}

func TestEditorService_CleanupTempFiles(t *testing.T) {
	editor, diary, fs := setupEditor(t, nil)
	for _, d := range []string{"2024-01-01", "2024-01-02"} {
		_, err := diary.AddEntry(d, "t", "c")
		require.NoError(t, err)
	}
	_, err := editor.Open(1)
	require.NoError(t, err)
	_, err = editor.Open(2)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testTempDir, "notes.txt"), []byte("x"), 0600))

	removed, err := editor.CleanupTempFiles()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := afero.ReadDir(fs, testTempDir)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "notes.txt", left[0].Name())
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, EditSummary{EntryID: 3}, Summarize(3, "same", "same"))

	s := Summarize(1, "the quick fox", "the slow fox")
	assert.True(t, s.Changed)
	assert.Equal(t, 4, s.Inserted)
	assert.Equal(t, 5, s.Deleted)

	s = Summarize(1, "", "héllo")
	assert.Equal(t, 5, s.Inserted)
}
