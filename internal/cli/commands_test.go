package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamm-dev/diary-mvp/internal/config"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"gopkg.in/yaml.v3"
)

const testDiaryPath = "/diary/diary_data.csv"

type testApp struct {
	app *App
	out *bytes.Buffer
	fs  afero.Fs
}

// setupTestApp creates an application over an in-memory filesystem
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Path = testDiaryPath
	cfg.Editor.TempDir = "/diary/tmp"
	cfg.Editor.Command = "true"
	cfg.CLI.Color = "never"

	fs := afero.NewMemMapFs()
	app := NewAppWithConfig(&cfg, fs, nil)
	out := &bytes.Buffer{}
	app.SetOutput(out)

	t.Cleanup(func() { _ = app.Close() })
	return &testApp{app: app, out: out, fs: fs}
}

// run executes one command line and returns what it printed
func (ta *testApp) run(args ...string) (string, error) {
	ta.out.Reset()
	root := ta.app.CreateRootCommand()
	root.SetArgs(args)
	err := root.Execute()
	return ta.out.String(), err
}

func (ta *testApp) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := ta.run(args...)
	require.NoError(t, err)
	return out
}

func (ta *testApp) listJSON(t *testing.T) []models.Entry {
	t.Helper()
	var entries []models.Entry
	require.NoError(t, json.Unmarshal([]byte(ta.mustRun(t, "list", "--json")), &entries))
	return entries
}

func TestAddAndList(t *testing.T) {
	ta := setupTestApp(t)

	out := ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "New Year", "--content", "Quiet start.\nSecond line")
	assert.Contains(t, out, "Created entry: 1")
	assert.Contains(t, out, "Title: New Year")

	out = ta.mustRun(t, "list")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "New Year")
	assert.Contains(t, out, "Quiet start.")
	assert.NotContains(t, out, "Second line")
}

func TestAddJSON(t *testing.T) {
	ta := setupTestApp(t)

	var entry models.Entry
	require.NoError(t, json.Unmarshal([]byte(ta.mustRun(t, "add", "--json", "--date", "2024-01-02", "--title", "T")), &entry))
	assert.Equal(t, models.Entry{ID: 1, Date: "2024-01-02", Title: "T"}, entry)
}

func TestAddSuggestsTitle(t *testing.T) {
	ta := setupTestApp(t)

	ta.mustRun(t, "add", "--date", "2024-01-02", "--suggest-title", "--content", "\nMorning walk by the river\nthen coffee")

	entries := ta.listJSON(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "Morning walk by the river", entries[0].Title)
}

func TestAddRejections(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "First")

	_, err := ta.run("add", "--date", "2024-01-02", "--title", "Again")
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrTypeConflict))

	_, err = ta.run("add", "--date", "2999-01-01", "--title", "Later")
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrTypeValidation))

	_, err = ta.run("add", "--date", "2024-01-03")
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrTypeValidation))

	assert.Len(t, ta.listJSON(t), 1)
}

func TestListEmpty(t *testing.T) {
	ta := setupTestApp(t)
	assert.Equal(t, "No entries found\n", ta.mustRun(t, "list"))
}

func TestShow(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "New Year", "--content", "body")

	out := ta.mustRun(t, "show", "1")
	assert.Contains(t, out, "ID: 1")
	assert.Contains(t, out, "Date: 2024-01-02")
	assert.Contains(t, out, "body")

	_, err := ta.run("show", "7")
	assert.True(t, models.IsType(err, models.ErrTypeNotFound))

	_, err = ta.run("show", "abc")
	assert.True(t, models.IsType(err, models.ErrTypeValidation))
}

func TestDeleteAndMove(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "add", "--date", "2024-01-01", "--title", "A")
	ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "B")
	ta.mustRun(t, "add", "--date", "2024-01-03", "--title", "C")

	ta.mustRun(t, "move-up", "3")
	assert.Equal(t, []int{1, 3, 2}, ids(ta.listJSON(t)))

	ta.mustRun(t, "move-down", "1")
	assert.Equal(t, []int{3, 1, 2}, ids(ta.listJSON(t)))

	_, err := ta.run("move-up", "3")
	assert.ErrorIs(t, err, models.ErrAtBoundary)

	assert.Contains(t, ta.mustRun(t, "delete", "1"), "Deleted entry: 1")
	assert.Equal(t, []int{3, 2}, ids(ta.listJSON(t)))

	_, err = ta.run("delete", "1")
	assert.ErrorIs(t, err, models.ErrEntryNotFound)
}

func TestDeleteAllRequiresYes(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "populate-samples")

	_, err := ta.run("delete-all")
	require.Error(t, err)
	assert.Len(t, ta.listJSON(t), 5)

	assert.Contains(t, ta.mustRun(t, "delete-all", "--yes"), "5 removed")
	assert.Empty(t, ta.listJSON(t))

	// ids restart after deleting everything
	assert.Contains(t, ta.mustRun(t, "add", "--date", "2024-01-01", "--title", "A"), "Created entry: 1")
}

func TestPopulateSamples(t *testing.T) {
	ta := setupTestApp(t)

	assert.Contains(t, ta.mustRun(t, "populate-samples"), "Added 5 sample entries.")
	assert.Contains(t, ta.mustRun(t, "populate-samples"), "Added 0 sample entries.")
}

func TestSaveWritesDiaryFile(t *testing.T) {
	ta := setupTestApp(t)

	assert.Contains(t, ta.mustRun(t, "save"), "Data saved successfully!")

	data, err := afero.ReadFile(ta.fs, testDiaryPath)
	require.NoError(t, err)
	assert.Equal(t, "id,date,title,content\n", string(data))
}

func TestSuggestTitle(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "x", "--content", "  \"Rainy day indoors\"  \nread a book")

	assert.Equal(t, "Rainy day indoors\n", ta.mustRun(t, "suggest-title", "1"))
}

func TestEditWithoutChanges(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	ta := setupTestApp(t)
	ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "T", "--content", "body")

	assert.Contains(t, ta.mustRun(t, "edit", "1"), "No changes to entry 1")

	leftovers, err := afero.Glob(ta.fs, "/diary/tmp/*")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestExportFormats(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "add", "--date", "2024-01-02", "--title", "Hello, world", "--content", "say \"hi\"")

	var fromJSON []models.Entry
	require.NoError(t, json.Unmarshal([]byte(ta.mustRun(t, "export", "--format", "json")), &fromJSON))

	var fromYAML []models.Entry
	require.NoError(t, yaml.Unmarshal([]byte(ta.mustRun(t, "export", "--format", "yaml")), &fromYAML))

	want := []models.Entry{{ID: 1, Date: "2024-01-02", Title: "Hello, world", Content: "say \"hi\""}}
	assert.Equal(t, want, fromJSON)
	assert.Equal(t, want, fromYAML)

	assert.Equal(t,
		"id,date,title,content\n1,2024-01-02,\"Hello, world\",\"say \"\"hi\"\"\"\n",
		ta.mustRun(t, "export", "--format", "csv"))

	_, err := ta.run("export", "--format", "xml")
	assert.True(t, models.IsType(err, models.ErrTypeValidation))
}

func TestStatus(t *testing.T) {
	ta := setupTestApp(t)

	var before statusReport
	require.NoError(t, json.Unmarshal([]byte(ta.mustRun(t, "status", "--json")), &before))
	assert.False(t, before.Initialized)
	assert.Equal(t, testDiaryPath, before.StoragePath)

	ta.mustRun(t, "populate-samples")
	out := ta.mustRun(t, "status")
	assert.Contains(t, out, "Storage: "+testDiaryPath)
	assert.NotContains(t, out, "not initialized")
	assert.Contains(t, out, "Entries: 5")
}

func TestStatusReportsSkippedRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testDiaryPath,
		[]byte("id,date,title,content\n1,2024-01-01,A,a\nbroken\n2,2024-01-02,B,b\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Storage.Path = testDiaryPath
	cfg.Editor.TempDir = "/diary/tmp"
	app := NewAppWithConfig(&cfg, fs, nil)
	out := &bytes.Buffer{}
	app.SetOutput(out)

	root := app.CreateRootCommand()
	root.SetArgs([]string{"status", "--json"})
	require.NoError(t, root.Execute())

	var report statusReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 2, report.EntryCount)
	assert.Equal(t, 1, report.Skipped)
}

func TestQuietSuppressesOutput(t *testing.T) {
	ta := setupTestApp(t)
	assert.Empty(t, ta.mustRun(t, "--quiet", "add", "--date", "2024-01-02", "--title", "T"))
}

func TestVersion(t *testing.T) {
	ta := setupTestApp(t)
	assert.Equal(t, "diary v"+Version+"\n", ta.mustRun(t, "version"))
}

func ids(entries []models.Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
