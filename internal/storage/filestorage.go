package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/zamm-dev/diary-mvp/internal/csvcodec"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/store"
)

// DefaultFileName is the name of the diary file inside the storage directory
const DefaultFileName = "diary_data.csv"

// FileStorage persists the diary as a single CSV file
type FileStorage struct {
	fs   afero.Fs
	path string
}

// NewFileStorage creates a file storage on the OS filesystem
func NewFileStorage(path string) *FileStorage {
	return NewFileStorageWithFs(afero.NewOsFs(), path)
}

// NewFileStorageWithFs creates a file storage on the given filesystem
func NewFileStorageWithFs(fs afero.Fs, path string) *FileStorage {
	return &FileStorage{
		fs:   fs,
		path: path,
	}
}

// Path returns the diary file path
func (f *FileStorage) Path() string {
	return f.path
}

// Fs returns the underlying filesystem
func (f *FileStorage) Fs() afero.Fs {
	return f.fs
}

// Exists reports whether the diary file is present
func (f *FileStorage) Exists() bool {
	ok, err := afero.Exists(f.fs, f.path)
	return err == nil && ok
}

// Load reads the diary file into s. A missing file leaves s empty and is not an
// error. The header is skipped without validation, blank lines are ignored and
// records that do not parse are counted in the report and dropped.
func (f *FileStorage) Load(s *store.Store) (LoadReport, error) {
	var report LoadReport

	file, err := f.fs.Open(f.path)
	if err != nil {
		s.Replace(nil)
		if errors.Is(err, os.ErrNotExist) {
			report.Missing = true
			return report, nil
		}
		return report, models.NewDiaryErrorWithCause(models.ErrTypeStorage, fmt.Sprintf("failed to open diary file: %s", f.path), err)
	}
	defer func() {
		_ = file.Close() // Explicitly ignore error in defer
	}()

	entries, report, err := readEntries(file)
	if err != nil {
		s.Replace(nil)
		return report, models.NewDiaryErrorWithCause(models.ErrTypeStorage, fmt.Sprintf("failed to read diary file: %s", f.path), err)
	}

	dropped := s.Replace(entries)
	report.Skipped += dropped
	report.Loaded = s.Count()
	return report, nil
}

func readEntries(r io.Reader) ([]models.Entry, LoadReport, error) {
	var report LoadReport
	reader := csvcodec.NewReader(r)

	// Skip header
	if _, err := reader.Next(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, report, nil
		}
		return nil, report, err
	}

	var entries []models.Entry
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, report, err
		}
		if record == "" {
			continue
		}

		report.Records++
		entry, ok := csvcodec.ParseLine(record)
		if !ok {
			report.Skipped++
			continue
		}
		entries = append(entries, entry)
	}

	return entries, report, nil
}

// Save overwrites the diary file with a header and one record per entry in
// store order.
func (f *FileStorage) Save(s *store.Store) error {
	var buf bytes.Buffer
	buf.WriteString(csvcodec.Header)
	buf.WriteByte('\n')
	for _, e := range s.All() {
		buf.WriteString(csvcodec.FormatLine(e))
		buf.WriteByte('\n')
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := f.fs.MkdirAll(dir, 0755); err != nil {
			return models.NewDiaryErrorWithCause(models.ErrTypeStorage, fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	if err := afero.WriteFile(f.fs, f.path, buf.Bytes(), 0644); err != nil {
		return models.NewDiaryErrorWithCause(models.ErrTypeStorage, fmt.Sprintf("failed to write diary file: %s", f.path), err)
	}
	return nil
}
