package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zamm-dev/diary-mvp/internal/models"
)

// DateLayout is the only accepted entry date format
const DateLayout = "2006-01-02"

// Validation messages shown to the user
const (
	MsgDateFormat    = "Date format must be YYYY-MM-DD."
	MsgMonthOrDay    = "Invalid month or day."
	MsgDayOfMonth    = "Invalid day for this month."
	MsgDayOfFebruary = "Invalid day for February."
	MsgDateInFuture  = "Date cannot be in the future."
	MsgTitleEmpty    = "Title cannot be empty."
	MsgDuplicateDate = "An entry for this date already exists."
)

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// entryInput is the shape checked before an entry reaches the store
type entryInput struct {
	Date  string `validate:"required,dateshape,datetime=2006-01-02,notfuture"`
	Title string `validate:"required"`
}

// EntryValidator checks user input for new entries. Checks run in order and
// stop at the first failure: date shape, calendar validity, not in the future,
// non-empty title.
type EntryValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewEntryValidator creates a validator that judges "the future" with now
func NewEntryValidator(now func() time.Time) *EntryValidator {
	v := &EntryValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	// Registration only fails for empty tags or nil funcs
	_ = v.validate.RegisterValidation("dateshape", func(fl validator.FieldLevel) bool {
		return dateShape.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		// Same-width YYYY-MM-DD strings order chronologically
		return fl.Field().String() <= v.now().Format(DateLayout)
	})

	return v
}

// Validate checks date and title, returning a validation DiaryError carrying the
// first failure's message. title is expected to be trimmed already.
func (v *EntryValidator) Validate(date, title string) error {
	err := v.validate.Struct(entryInput{Date: date, Title: title})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewDiaryErrorWithCause(models.ErrTypeValidation, "invalid entry", err)
	}

	first := fieldErrs[0]
	return models.NewDiaryErrorWithCause(models.ErrTypeValidation, messageFor(first, date), err)
}

func messageFor(fe validator.FieldError, date string) string {
	if fe.Field() == "Title" {
		return MsgTitleEmpty
	}

	switch fe.Tag() {
	case "datetime":
		return calendarMessage(date)
	case "notfuture":
		return MsgDateInFuture
	default:
		return MsgDateFormat
	}
}

// calendarMessage explains why a well-shaped date is not a real day
func calendarMessage(date string) string {
	parts := strings.Split(date, "-")
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	switch {
	case month < 1 || month > 12 || day < 1 || day > 31:
		return MsgMonthOrDay
	case month == 2:
		return MsgDayOfFebruary
	case day > daysIn(year, time.Month(month)):
		return MsgDayOfMonth
	}
	return MsgDateFormat
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
