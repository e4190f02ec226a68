package rules

import (
	"fmt"
	"time"
)

// WorkdayType classifies a calendar date. It decides which regular-hours
// window applies and whether any work at all counts as overtime.
type WorkdayType string

const (
	Weekday  WorkdayType = "WEEKDAY"
	Saturday WorkdayType = "SATURDAY"
	Sunday   WorkdayType = "SUNDAY"
	Holiday  WorkdayType = "HOLIDAY"
)

// TimeOfDay is a wall-clock time without a date, in the engine's zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04" formatted boundaries.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On anchors the time of day to the calendar date of ref in location loc.
func (t TimeOfDay) On(ref time.Time, loc *time.Location) time.Time {
	local := ref.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// WorkWindow is the regular-hours range for a workday type.
type WorkWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

// WorkWindows holds the configured regular-hours windows. Sunday and holidays
// have no window: every minute worked on them is overtime.
type WorkWindows struct {
	Weekday  WorkWindow
	Saturday WorkWindow
}

// HolidayFn reports whether a date falls on a public holiday. The engine
// treats it as an injected collaborator; without one, non-weekend days are
// plain weekdays.
type HolidayFn func(date time.Time) bool

// Engine evaluates the attendance business rules. It is pure and stateless:
// every method is a total function of its arguments plus the fixed
// configuration captured here. Callers supply the clock.
type Engine struct {
	windows             WorkWindows
	loc                 *time.Location
	isHoliday           HolidayFn
	longOvertimeMinutes int
}

// NewEngine builds an engine for the deployment time zone. holidayFn may be
// nil.
func NewEngine(windows WorkWindows, loc *time.Location, holidayFn HolidayFn, longOvertimeMinutes int) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		windows:             windows,
		loc:                 loc,
		isHoliday:           holidayFn,
		longOvertimeMinutes: longOvertimeMinutes,
	}
}

// Location returns the zone the engine evaluates wall-clock boundaries in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// LongOvertimeMinutes returns the threshold above which approving an overtime
// request needs the long-overtime capability.
func (e *Engine) LongOvertimeMinutes() int {
	return e.longOvertimeMinutes
}

// ClassifyWorkday classifies the calendar date of t. Holiday wins over the
// day of week when a holiday calendar is wired in.
func (e *Engine) ClassifyWorkday(t time.Time) WorkdayType {
	local := t.In(e.loc)
	if e.isHoliday != nil && e.isHoliday(local) {
		return Holiday
	}
	switch local.Weekday() {
	case time.Sunday:
		return Sunday
	case time.Saturday:
		return Saturday
	default:
		return Weekday
	}
}

// WorkStartTime returns the start of regular hours for the workday type.
// ok is false for Sunday and holidays, which have no regular hours.
func (e *Engine) WorkStartTime(wt WorkdayType) (TimeOfDay, bool) {
	switch wt {
	case Weekday:
		return e.windows.Weekday.Start, true
	case Saturday:
		return e.windows.Saturday.Start, true
	default:
		return TimeOfDay{}, false
	}
}

// WorkEndTime returns the end of regular hours for the workday type.
// ok is false for Sunday and holidays, which have no regular hours.
func (e *Engine) WorkEndTime(wt WorkdayType) (TimeOfDay, bool) {
	switch wt {
	case Weekday:
		return e.windows.Weekday.End, true
	case Saturday:
		return e.windows.Saturday.End, true
	default:
		return TimeOfDay{}, false
	}
}
