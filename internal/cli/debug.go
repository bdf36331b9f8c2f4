package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/zamm-dev/diary-mvp/internal/logging"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"go.uber.org/zap"
)

const debugStampLayout = "2006-01-02-15-04-05"

// debugLogPath names a message dump for a session started at the given time.
// Dumps sit next to the configured log file, or in a logs directory beside the
// diary when file logging is off.
func (a *App) debugLogPath(at time.Time) string {
	dir := filepath.Join(filepath.Dir(a.config.Storage.Path), "logs")
	if a.config.Logging.File != "" {
		dir = filepath.Dir(a.config.Logging.File)
	}
	return filepath.Join(dir, fmt.Sprintf("diary-debug-%s.log", at.Format(debugStampLayout)))
}

// openDebugLog creates the dump file on the diary's filesystem
func (a *App) openDebugLog() (afero.File, error) {
	path := a.debugLogPath(a.now())
	fs := a.storage.Fs()

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to create logs directory %s", dir), err)
	}

	file, err := fs.Create(path)
	if err != nil {
		return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to create debug log file %s", path), err)
	}

	a.logger.Debug("debug dump opened", zap.String(logging.FieldPath, path))
	return file, nil
}
