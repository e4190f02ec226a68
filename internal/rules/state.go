package rules

import (
	"strings"
	"time"
)

// Action is what the employee should be offered next, derived fresh from the
// persisted record on every request. It is never cached: an admin rejecting
// after the fact changes the applicable branch.
type Action string

const (
	ActionCheckIn       Action = "CHECK_IN"
	ActionCheckOut      Action = "CHECK_OUT"
	ActionOvertimeStart Action = "OVERTIME_START"
	ActionOvertimeEnd   Action = "OVERTIME_END"
	ActionComplete      Action = "COMPLETE"
)

// RejectionMarker is the free-text marker the legacy system wrote into notes
// when a request was rejected. Detection by substring is kept for records
// imported with it; newly rejected records also carry an explicit status.
const RejectionMarker = "Di Tolak"

// RecordView is the slice of an attendance record the state machine reads.
type RecordView struct {
	CheckIn              *time.Time
	CheckOut             *time.Time
	OvertimeStart        *time.Time
	OvertimeEnd          *time.Time
	Notes                string
	ApprovedAt           *time.Time
	OvertimeMinutes      int
	IsOvertimeApproved   bool
	IsSundayWork         bool
	IsSundayWorkApproved bool
}

// IsRejectedResubmission reports whether the record represents a rejected
// request the employee must re-enter: either the notes carry the rejection
// marker, or the record was processed (approvedAt set) and a submitted
// overtime or Sunday-work request was denied.
func IsRejectedResubmission(r *RecordView) bool {
	if r == nil {
		return false
	}
	if strings.Contains(r.Notes, RejectionMarker) {
		return true
	}
	if r.ApprovedAt == nil {
		return false
	}
	if r.OvertimeMinutes > 0 && !r.IsOvertimeApproved {
		return true
	}
	if r.IsSundayWork && !r.IsSundayWorkApproved {
		return true
	}
	return false
}

// NextAction derives the next legal step in the daily attendance cycle:
//
//	NOT_CHECKED_IN -> CHECKED_IN -> CHECKED_OUT -> overtime start/end -> done
//
// nowOutsideRegularHours lets the first action of the day be an overtime
// start on Sundays, holidays, or past the end of regular hours. Taking the
// resubmission branch obliges the mutation handler to clear checkOut and the
// approval fields while keeping the record's date.
func NextAction(r *RecordView, nowOutsideRegularHours bool) Action {
	if r == nil || (r.CheckIn == nil && r.CheckOut == nil) {
		if nowOutsideRegularHours {
			return ActionOvertimeStart
		}
		return ActionCheckIn
	}

	if IsRejectedResubmission(r) {
		return ActionCheckIn
	}

	if r.CheckIn != nil && r.CheckOut == nil {
		return ActionCheckOut
	}

	// Both checkIn and checkOut are set.
	if r.OvertimeStart == nil {
		if nowOutsideRegularHours {
			return ActionOvertimeStart
		}
		return ActionComplete
	}
	if r.OvertimeEnd == nil {
		return ActionOvertimeEnd
	}
	return ActionComplete
}
