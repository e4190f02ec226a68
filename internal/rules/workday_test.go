package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func testWindows(t *testing.T) WorkWindows {
	t.Helper()
	weekdayStart, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	weekdayEnd, err := ParseTimeOfDay("17:00")
	require.NoError(t, err)
	saturdayStart, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	saturdayEnd, err := ParseTimeOfDay("12:00")
	require.NoError(t, err)
	return WorkWindows{
		Weekday:  WorkWindow{Start: weekdayStart, End: weekdayEnd},
		Saturday: WorkWindow{Start: saturdayStart, End: saturdayEnd},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(testWindows(t), wib, nil, 120)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("17:00")
	require.NoError(t, err)
	assert.Equal(t, 17, tod.Hour)
	assert.Equal(t, 0, tod.Minute)
	assert.Equal(t, "17:00", tod.String())
	assert.Equal(t, 17*60, tod.Minutes())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("five")
	assert.Error(t, err)
}

func TestClassifyWorkday(t *testing.T) {
	e := testEngine(t)

	cases := []struct {
		name string
		date time.Time
		want WorkdayType
	}{
		{"monday", time.Date(2024, 6, 3, 9, 0, 0, 0, wib), Weekday},
		{"friday", time.Date(2024, 6, 7, 23, 59, 0, 0, wib), Weekday},
		{"saturday", time.Date(2024, 6, 8, 0, 0, 0, 0, wib), Saturday},
		{"sunday", time.Date(2024, 6, 9, 12, 0, 0, 0, wib), Sunday},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, e.ClassifyWorkday(c.date))
			// Deterministic: repeated calls agree.
			assert.Equal(t, e.ClassifyWorkday(c.date), e.ClassifyWorkday(c.date))
		})
	}
}

func TestClassifyWorkdayCrossesZoneBoundary(t *testing.T) {
	e := testEngine(t)

	// Saturday 23:00 UTC is already Sunday 06:00 in WIB. Classification runs
	// in the engine's zone, not the caller's.
	utcSaturdayEvening := time.Date(2024, 6, 8, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, Sunday, e.ClassifyWorkday(utcSaturdayEvening))
}

func TestClassifyWorkdayHolidayCalendar(t *testing.T) {
	independenceDay := time.Date(2024, 8, 17, 0, 0, 0, 0, wib)
	holidayFn := func(d time.Time) bool {
		return d.Month() == time.August && d.Day() == 17
	}
	e := NewEngine(testWindows(t), wib, holidayFn, 120)

	// 2024-08-17 is a Saturday; the holiday calendar wins.
	assert.Equal(t, Holiday, e.ClassifyWorkday(independenceDay))
	// Without the calendar, it is just a Saturday.
	assert.Equal(t, Saturday, testEngine(t).ClassifyWorkday(independenceDay))
}

func TestWorkEndTime(t *testing.T) {
	e := testEngine(t)

	end, ok := e.WorkEndTime(Weekday)
	require.True(t, ok)
	assert.Equal(t, "17:00", end.String())

	end, ok = e.WorkEndTime(Saturday)
	require.True(t, ok)
	assert.Equal(t, "12:00", end.String())

	_, ok = e.WorkEndTime(Sunday)
	assert.False(t, ok, "Sunday has no regular hours")

	_, ok = e.WorkEndTime(Holiday)
	assert.False(t, ok, "holidays have no regular hours")
}

func TestWorkStartTime(t *testing.T) {
	e := testEngine(t)

	start, ok := e.WorkStartTime(Weekday)
	require.True(t, ok)
	assert.Equal(t, "08:00", start.String())

	_, ok = e.WorkStartTime(Sunday)
	assert.False(t, ok)
}

func TestTimeOfDayOn(t *testing.T) {
	tod := TimeOfDay{Hour: 17, Minute: 0}
	ref := time.Date(2024, 6, 3, 9, 30, 0, 0, wib)
	anchored := tod.On(ref, wib)
	assert.Equal(t, time.Date(2024, 6, 3, 17, 0, 0, 0, wib), anchored)
}
