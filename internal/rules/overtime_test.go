package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOvertimeCheckOutBoundary(t *testing.T) {
	e := testEngine(t)
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, wib)

	atBoundary := time.Date(2024, 6, 3, 17, 0, 0, 0, wib)
	oneMinuteAfter := time.Date(2024, 6, 3, 17, 1, 0, 0, wib)
	oneMinuteBefore := time.Date(2024, 6, 3, 16, 59, 0, 0, wib)

	assert.False(t, e.IsOvertimeCheckOut(atBoundary, monday), "exactly 17:00 is not yet overtime")
	assert.True(t, e.IsOvertimeCheckOut(oneMinuteAfter, monday))
	assert.False(t, e.IsOvertimeCheckOut(oneMinuteBefore, monday))
}

func TestIsOvertimeCheckInSaturday(t *testing.T) {
	e := testEngine(t)
	saturday := time.Date(2024, 6, 8, 0, 0, 0, 0, wib)

	noon := time.Date(2024, 6, 8, 12, 0, 0, 0, wib)
	afternoon := time.Date(2024, 6, 8, 13, 30, 0, 0, wib)

	assert.False(t, e.IsOvertimeCheckIn(noon, saturday), "exactly 12:00 is the boundary")
	assert.True(t, e.IsOvertimeCheckIn(afternoon, saturday))
}

func TestOvertimeOnSundayRegardlessOfTime(t *testing.T) {
	e := testEngine(t)
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, wib)

	for _, hour := range []int{0, 6, 12, 18, 23} {
		now := time.Date(2024, 6, 9, hour, 0, 0, 0, wib)
		assert.True(t, e.IsOvertimeCheckIn(now, sunday), "hour %d", hour)
		assert.True(t, e.IsOvertimeCheckOut(now, sunday), "hour %d", hour)
	}
}

func TestOvertimeMinutes(t *testing.T) {
	e := testEngine(t)
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, wib)

	checkIn := time.Date(2024, 6, 3, 8, 0, 0, 0, wib)

	t.Run("no spill past boundary", func(t *testing.T) {
		checkOut := time.Date(2024, 6, 3, 17, 0, 0, 0, wib)
		assert.Equal(t, 0, e.OvertimeMinutes(checkIn, checkOut, monday))
	})

	t.Run("ninety minutes past", func(t *testing.T) {
		checkOut := time.Date(2024, 6, 3, 18, 30, 0, 0, wib)
		assert.Equal(t, 90, e.OvertimeMinutes(checkIn, checkOut, monday))
	})

	t.Run("sunday counts the whole span", func(t *testing.T) {
		sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, wib)
		in := time.Date(2024, 6, 9, 9, 0, 0, 0, wib)
		out := time.Date(2024, 6, 9, 12, 15, 0, 0, wib)
		assert.Equal(t, 195, e.OvertimeMinutes(in, out, sunday))
	})
}

func TestLateMinutes(t *testing.T) {
	e := testEngine(t)
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, wib)
	grace := 10 * time.Minute

	t.Run("on time", func(t *testing.T) {
		now := time.Date(2024, 6, 3, 7, 55, 0, 0, wib)
		assert.Equal(t, 0, e.LateMinutes(now, monday, grace))
	})

	t.Run("inside grace period", func(t *testing.T) {
		now := time.Date(2024, 6, 3, 8, 10, 0, 0, wib)
		assert.Equal(t, 0, e.LateMinutes(now, monday, grace))
	})

	t.Run("past grace counts from scheduled start", func(t *testing.T) {
		now := time.Date(2024, 6, 3, 8, 25, 0, 0, wib)
		assert.Equal(t, 25, e.LateMinutes(now, monday, grace))
	})

	t.Run("sunday has no schedule to be late against", func(t *testing.T) {
		sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, wib)
		now := time.Date(2024, 6, 9, 14, 0, 0, 0, wib)
		assert.Equal(t, 0, e.LateMinutes(now, sunday, grace))
	})
}
