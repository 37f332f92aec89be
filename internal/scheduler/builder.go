package scheduler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Configuration errors reported before any scheduling starts.
var (
	ErrWindowInverted    = errors.New("scheduler: window start date is after end date")
	ErrNonPositiveHours  = errors.New("scheduler: subject requires a positive hour total")
	ErrInvalidWeekOffset = errors.New("scheduler: biweekly week offset must be 0 or 1")
	ErrDuplicateSubject  = errors.New("scheduler: duplicate subject code")
)

// Result is the outcome of one Builder run.
type Result struct {
	// Entries lists generated business days in ascending date order.
	Entries []DayEntry
	// Residual maps subject codes to hours the window could not absorb.
	// Empty means every subject was fully scheduled. Callers are expected
	// to surface a non-empty residual to the operator.
	Residual map[string]int
}

// Builder walks a course window one calendar day at a time and allocates
// subject hours into the fixed two-block daily schedule until every
// balance is exhausted or the window closes.
//
// A Builder run is pure: identical inputs produce identical results, and
// the ledger it owns is never shared. The logger only emits diagnostics.
type Builder struct {
	window   Window
	holidays HolidaySet
	subjects []Subject
	logger   *zap.Logger
}

// NewBuilder captures a run's inputs. The subject slice is copied so the
// run stays deterministic if the caller mutates its copy. A nil logger
// disables diagnostics.
func NewBuilder(window Window, holidays HolidaySet, subjects []Subject, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	owned := make([]Subject, len(subjects))
	copy(owned, subjects)
	return &Builder{
		window:   Window{Start: DateOf(window.Start), End: DateOf(window.End)},
		holidays: holidays,
		subjects: owned,
		logger:   logger,
	}
}

// Generate runs a one-shot build without diagnostics.
func Generate(window Window, holidays HolidaySet, subjects []Subject) (*Result, error) {
	return NewBuilder(window, holidays, subjects, nil).Run()
}

// Run produces the timetable. It returns a configuration error before
// scheduling anything, never mid-run.
func (b *Builder) Run() (*Result, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	ledger := NewLedger(b.subjects)
	var entries []DayEntry
	var carry *Subject

	for date := b.window.Start; !date.After(b.window.End) && ledger.AnyRemaining(); date = date.AddDate(0, 0, 1) {
		if !IsBusinessDay(date, b.holidays) {
			continue
		}

		var primary Subject
		offPreference := false
		if carry != nil {
			// Yesterday's afternoon starter continues into this morning,
			// bypassing eligibility for one day.
			primary = *carry
			offPreference = true
			carry = nil
		} else {
			p, fb, ok := resolvePrimary(ledger, date.Weekday(), b.window.WeekIndex(date))
			if !ok {
				break
			}
			primary = p
			offPreference = fb
		}

		morning, afternoon, next := fillDay(ledger, primary, offPreference)
		carry = next
		entries = append(entries, DayEntry{Date: date, Morning: morning, Afternoon: afternoon})

		b.logger.Debug("timetable day allocated",
			zap.Time("date", date),
			zap.String("am_subject", morning.SubjectCode),
			zap.Int("am_hours", morning.Hours),
			zap.String("pm_subject", afternoon.SubjectCode),
			zap.Int("pm_hours", afternoon.Hours),
			zap.Bool("off_preference", offPreference),
			zap.Bool("carry_pending", carry != nil),
		)
	}

	residual := ledger.Residual()
	if len(residual) > 0 {
		b.logger.Warn("course window exhausted before all subject hours were scheduled",
			zap.Any("residual_hours", residual))
	}
	return &Result{Entries: entries, Residual: residual}, nil
}

func (b *Builder) validate() error {
	if b.window.Start.After(b.window.End) {
		return fmt.Errorf("%w: %s > %s", ErrWindowInverted,
			b.window.Start.Format("2006-01-02"), b.window.End.Format("2006-01-02"))
	}
	seen := make(map[string]struct{}, len(b.subjects))
	for _, s := range b.subjects {
		if _, dup := seen[s.Code]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSubject, s.Code)
		}
		seen[s.Code] = struct{}{}
		if s.TotalHours <= 0 {
			return fmt.Errorf("%w: subject %q has %d", ErrNonPositiveHours, s.Code, s.TotalHours)
		}
		if s.Biweekly && (s.WeekOffset < 0 || s.WeekOffset > 1) {
			return fmt.Errorf("%w: subject %q has %d", ErrInvalidWeekOffset, s.Code, s.WeekOffset)
		}
	}
	return nil
}
