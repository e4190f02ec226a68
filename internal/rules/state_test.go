package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestNextActionFreshDay(t *testing.T) {
	assert.Equal(t, ActionCheckIn, NextAction(nil, false))
	assert.Equal(t, ActionCheckIn, NextAction(&RecordView{}, false))

	// Past regular hours or on a Sunday the first action offered is an
	// overtime start instead.
	assert.Equal(t, ActionOvertimeStart, NextAction(nil, true))
	assert.Equal(t, ActionOvertimeStart, NextAction(&RecordView{}, true))
}

func TestNextActionCheckedIn(t *testing.T) {
	r := &RecordView{CheckIn: timePtr(time.Date(2024, 6, 3, 8, 0, 0, 0, wib))}
	assert.Equal(t, ActionCheckOut, NextAction(r, false))
	assert.Equal(t, ActionCheckOut, NextAction(r, true))
}

func TestNextActionAfterCheckOut(t *testing.T) {
	r := &RecordView{
		CheckIn:  timePtr(time.Date(2024, 6, 3, 8, 0, 0, 0, wib)),
		CheckOut: timePtr(time.Date(2024, 6, 3, 17, 0, 0, 0, wib)),
	}

	assert.Equal(t, ActionComplete, NextAction(r, false), "overtime start is only offered outside regular hours")
	assert.Equal(t, ActionOvertimeStart, NextAction(r, true))

	r.OvertimeStart = timePtr(time.Date(2024, 6, 3, 17, 30, 0, 0, wib))
	assert.Equal(t, ActionOvertimeEnd, NextAction(r, true))

	r.OvertimeEnd = timePtr(time.Date(2024, 6, 3, 19, 0, 0, 0, wib))
	assert.Equal(t, ActionComplete, NextAction(r, true))
}

func TestNextActionRejectedResubmission(t *testing.T) {
	checkIn := timePtr(time.Date(2024, 6, 3, 8, 0, 0, 0, wib))
	checkOut := timePtr(time.Date(2024, 6, 3, 17, 0, 0, 0, wib))

	t.Run("notes marker", func(t *testing.T) {
		r := &RecordView{
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Notes:    "Lembur Di Tolak oleh manager",
		}
		assert.True(t, IsRejectedResubmission(r))
		assert.Equal(t, ActionCheckIn, NextAction(r, false))
	})

	t.Run("processed with denied overtime", func(t *testing.T) {
		r := &RecordView{
			CheckIn:            checkIn,
			CheckOut:           checkOut,
			ApprovedAt:         timePtr(time.Date(2024, 6, 4, 9, 0, 0, 0, wib)),
			OvertimeMinutes:    90,
			IsOvertimeApproved: false,
		}
		assert.True(t, IsRejectedResubmission(r))
		assert.Equal(t, ActionCheckIn, NextAction(r, false))
	})

	t.Run("processed with denied sunday work", func(t *testing.T) {
		r := &RecordView{
			CheckIn:              checkIn,
			ApprovedAt:           timePtr(time.Date(2024, 6, 10, 9, 0, 0, 0, wib)),
			IsSundayWork:         true,
			IsSundayWorkApproved: false,
		}
		assert.True(t, IsRejectedResubmission(r))
		assert.Equal(t, ActionCheckIn, NextAction(r, false))
	})

	t.Run("approved records are not resubmissions", func(t *testing.T) {
		r := &RecordView{
			CheckIn:            checkIn,
			CheckOut:           checkOut,
			ApprovedAt:         timePtr(time.Date(2024, 6, 4, 9, 0, 0, 0, wib)),
			OvertimeMinutes:    90,
			IsOvertimeApproved: true,
		}
		assert.False(t, IsRejectedResubmission(r))
		assert.Equal(t, ActionComplete, NextAction(r, false))
	})

	t.Run("unprocessed pending record is not a resubmission", func(t *testing.T) {
		r := &RecordView{
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			OvertimeMinutes: 90,
		}
		assert.False(t, IsRejectedResubmission(r))
	})
}

// The full daily cycle: each applied action makes NextAction yield the next
// one, ending at COMPLETE.
func TestNextActionRoundTrip(t *testing.T) {
	r := &RecordView{}
	outside := false

	assert.Equal(t, ActionCheckIn, NextAction(r, outside))
	r.CheckIn = timePtr(time.Date(2024, 6, 3, 8, 0, 0, 0, wib))

	assert.Equal(t, ActionCheckOut, NextAction(r, outside))
	r.CheckOut = timePtr(time.Date(2024, 6, 3, 17, 5, 0, 0, wib))

	outside = true // past 17:00 now
	assert.Equal(t, ActionOvertimeStart, NextAction(r, outside))
	r.OvertimeStart = timePtr(time.Date(2024, 6, 3, 17, 30, 0, 0, wib))

	assert.Equal(t, ActionOvertimeEnd, NextAction(r, outside))
	r.OvertimeEnd = timePtr(time.Date(2024, 6, 3, 19, 30, 0, 0, wib))

	assert.Equal(t, ActionComplete, NextAction(r, outside))
}
