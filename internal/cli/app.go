package cli

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/zamm-dev/diary-mvp/internal/config"
	"github.com/zamm-dev/diary-mvp/internal/logging"
	"github.com/zamm-dev/diary-mvp/internal/services"
	"github.com/zamm-dev/diary-mvp/internal/storage"
	"go.uber.org/zap"
)

// App represents the CLI application
type App struct {
	config    *config.Config
	logger    *zap.Logger
	logCloser io.Closer

	storage *storage.FileStorage
	diary   services.DiaryService
	editor  *services.EditorService
	titles  services.TitleService

	loadReport storage.LoadReport
	loadErr    error

	out        io.Writer
	now        func() time.Time
	jsonOutput bool
	quiet      bool
}

// NewApp creates a new CLI application from the configuration of the current
// directory
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := config.EnsureDirectories(cfg); err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	app := NewAppWithConfig(cfg, afero.NewOsFs(), logger)
	app.logCloser = closer
	return app, nil
}

// NewAppWithConfig wires an application over fs. The diary file is loaded
// immediately; a load failure leaves the diary empty and is reported by the
// status command.
func NewAppWithConfig(cfg *config.Config, fs afero.Fs, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	applyColorSetting(cfg.CLI.Color)

	st := storage.NewFileStorageWithFs(fs, cfg.Storage.Path)
	diary := services.NewDiaryService(st, services.WithLogger(logger))
	report, loadErr := diary.Load()

	return &App{
		config:     cfg,
		logger:     logger,
		storage:    st,
		diary:      diary,
		editor:     services.NewEditorService(diary, cfg.Editor.TempDir, cfg.Editor.Command, services.WithEditorFs(fs), services.WithEditorLogger(logger)),
		titles:     services.NewTitleService(cfg.LLM.APIKey),
		loadReport: report,
		loadErr:    loadErr,
		out:        os.Stdout,
		now:        time.Now,
	}
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Diary returns the diary service
func (a *App) Diary() services.DiaryService {
	return a.diary
}

// Close saves the diary, removes leftover editor files and flushes the log
func (a *App) Close() error {
	if _, err := a.editor.CleanupTempFiles(); err != nil {
		a.logger.Warn("failed to clean up editor files", zap.Error(err))
	}

	err := a.diary.Close()
	_ = a.logger.Sync()
	if a.logCloser != nil {
		if closeErr := a.logCloser.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func applyColorSetting(setting string) {
	switch setting {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}
}
