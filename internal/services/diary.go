package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/zamm-dev/diary-mvp/internal/logging"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/storage"
	"github.com/zamm-dev/diary-mvp/internal/store"
	"go.uber.org/zap"
)

// DiaryService is the facade the CLI, the TUI and the MCP server talk to. It
// owns the record store and flushes it to storage after every mutation.
type DiaryService interface {
	Load() (storage.LoadReport, error)
	Close() error

	AddEntry(date, title, content string) (models.Entry, error)
	GetEntry(id int) (models.Entry, error)
	ListEntries() []models.Entry
	Count() int
	ExistsOnDate(date string) bool

	DeleteEntry(id int) error
	DeleteAll() int
	MoveUp(id int) error
	MoveDown(id int) error
	CanMoveUp(id int) bool
	CanMoveDown(id int) bool
	UpdateContent(id int, content string) (models.Entry, error)

	Save() error
	PopulateSamples() int
	StoragePath() string
}

// Option configures a diary service
type Option func(*diaryService)

// WithClock overrides the clock used to reject future dates
func WithClock(now func() time.Time) Option {
	return func(s *diaryService) {
		s.now = now
	}
}

// WithLogger sets the logger for best-effort persistence failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *diaryService) {
		s.logger = logger
	}
}

// diaryService implements the DiaryService interface
type diaryService struct {
	mu        sync.Mutex
	store     *store.Store
	storage   storage.Storage
	validator *EntryValidator
	logger    *zap.Logger
	now       func() time.Time
	// touched is set once the diary file exists or the store was modified
	touched bool
}

// NewDiaryService creates a service over an empty store. Call Load to read the
// diary file.
func NewDiaryService(st storage.Storage, opts ...Option) DiaryService {
	s := &diaryService{
		store:   store.New(),
		storage: st,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = NewEntryValidator(func() time.Time { return s.now() })
	return s
}

// Load replaces the store with the diary file. A failed read leaves the store
// empty; the error is returned for reporting only.
func (s *diaryService) Load() (storage.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.storage.Load(s.store)
	s.touched = err == nil && !report.Missing
	if err != nil {
		s.logger.Warn("failed to load diary, starting empty",
			zap.String(logging.FieldPath, s.storage.Path()), zap.Error(err))
		return report, err
	}

	if report.Skipped > 0 {
		s.logger.Warn("skipped malformed diary records",
			zap.String(logging.FieldPath, s.storage.Path()), zap.Int(logging.FieldSkipped, report.Skipped))
	}
	s.logger.Debug("diary loaded",
		zap.String(logging.FieldPath, s.storage.Path()),
		zap.Int(logging.FieldCount, report.Loaded),
		zap.Bool("missing", report.Missing))
	return report, nil
}

// Close flushes the store one last time and reports a failed write. A diary
// that was never created and never modified is not written.
func (s *diaryService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.touched {
		return nil
	}
	return s.persist("close")
}

// AddEntry validates and appends a new entry. The title and date are trimmed;
// content is stored as typed.
func (s *diaryService) AddEntry(date, title, content string) (models.Entry, error) {
	date = strings.TrimSpace(date)
	title = strings.TrimSpace(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validator.Validate(date, title); err != nil {
		return models.Entry{}, err
	}

	entry, err := s.store.Add(date, title, content)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateDate) {
			return models.Entry{}, models.NewDiaryErrorWithCause(models.ErrTypeConflict, MsgDuplicateDate, err)
		}
		return models.Entry{}, err
	}

	s.logger.Info("entry added", zap.Int(logging.FieldEntryID, entry.ID), zap.String(logging.FieldDate, entry.Date))
	_ = s.persist("add")
	return entry, nil
}

// GetEntry retrieves an entry by id
func (s *diaryService) GetEntry(id int) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store.FindByID(id)
	if !ok {
		return models.Entry{}, models.ErrEntryNotFound
	}
	return entry, nil
}

// ListEntries returns a snapshot of the entries in display order
func (s *diaryService) ListEntries() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

func (s *diaryService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Count()
}

func (s *diaryService) ExistsOnDate(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ExistsOnDate(date)
}

// DeleteEntry removes an entry and saves
func (s *diaryService) DeleteEntry(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(id); err != nil {
		return err
	}

	s.logger.Info("entry deleted", zap.Int(logging.FieldEntryID, id))
	_ = s.persist("delete")
	return nil
}

// DeleteAll empties the diary, resets ids and saves. It returns how many
// entries were removed.
func (s *diaryService) DeleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.store.Count()
	s.store.DeleteAll()

	s.logger.Info("all entries deleted", zap.Int(logging.FieldCount, removed))
	_ = s.persist("delete_all")
	return removed
}

func (s *diaryService) MoveUp(id int) error {
	return s.move(id, "move_up", s.store.MoveUp)
}

func (s *diaryService) MoveDown(id int) error {
	return s.move(id, "move_down", s.store.MoveDown)
}

func (s *diaryService) move(id int, action string, fn func(int) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(id); err != nil {
		return err
	}
	_ = s.persist(action)
	return nil
}

// CanMoveUp reports whether the entry exists and is not first
func (s *diaryService) CanMoveUp(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.IndexOf(id) > 0
}

// CanMoveDown reports whether the entry exists and is not last
func (s *diaryService) CanMoveDown(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.store.IndexOf(id)
	return idx >= 0 && idx < s.store.Count()-1
}

// UpdateContent replaces an entry's content and saves
func (s *diaryService) UpdateContent(id int, content string) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateContent(id, content); err != nil {
		return models.Entry{}, err
	}
	entry, _ := s.store.FindByID(id)

	s.logger.Info("entry content updated", zap.Int(logging.FieldEntryID, id))
	_ = s.persist("update_content")
	return entry, nil
}

// Save writes the store now and reports the outcome
func (s *diaryService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = true
	return s.storage.Save(s.store)
}

// PopulateSamples adds the built-in sample entries, skipping any whose date is
// already used. It returns how many were added.
func (s *diaryService) PopulateSamples() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, sample := range SampleEntries {
		if _, err := s.store.Add(sample.Date, sample.Title, sample.Content); err == nil {
			added++
		}
	}

	s.logger.Info("sample entries added", zap.Int(logging.FieldCount, added))
	if added > 0 {
		_ = s.persist("populate_samples")
	}
	return added
}

func (s *diaryService) StoragePath() string {
	return s.storage.Path()
}

// persist saves best-effort: a failure is logged and the in-memory state is
// kept. Mutations ignore the returned error. Callers hold s.mu.
func (s *diaryService) persist(action string) error {
	s.touched = true
	err := s.storage.Save(s.store)
	if err != nil {
		s.logger.Error("failed to save diary",
			zap.String(logging.FieldAction, action),
			zap.String(logging.FieldPath, s.storage.Path()),
			zap.Error(err))
	}
	return err
}

// SampleEntries seed an empty diary for demos
var SampleEntries = []models.Entry{
	{Date: "2023-01-15", Title: "First Day of a New Project", Content: "Started working on the diary project. Feeling optimistic about the progress and challenges ahead."},
	{Date: "2023-03-22", Title: "A Challenging Bug", Content: "Spent the entire day tracking down a memory leak. Finally found it in the rendering loop. It was a misplaced cleanup call."},
	{Date: "2023-05-01", Title: "Holiday Trip", Content: "Took a short trip to the mountains. The fresh air was exactly what I needed to clear my head."},
	{Date: "2023-08-11", Title: "Presentation Day", Content: "Presented the project prototype today. The feedback was overwhelmingly positive! All the hard work is paying off."},
	{Date: "2023-10-26", Title: "Refactoring Old Code", Content: "Decided to refactor the UI layer. It's a lot of work, but it will be worth it for maintainability."},
}
