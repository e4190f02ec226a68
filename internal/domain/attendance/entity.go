package attendance

import (
	"time"

	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

// Status values for a daily attendance record.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfday = "HALFDAY"
)

// Approval workflow status. Legacy records may only carry the rejection
// marker in Notes; new rejections set both.
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Attendance is one row per employee per calendar day. It is created on the
// first check-in (or overtime start on Sundays/holidays), mutated by the
// later steps of the daily cycle and by approve/reject, and never deleted.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // working day in the deployment zone, truncated to day

	CheckIn       *time.Time
	CheckOut      *time.Time
	OvertimeStart *time.Time
	OvertimeEnd   *time.Time

	Status         string
	ApprovalStatus string
	IsLate         bool
	LateMinutes    int

	OvertimeMinutes      int
	OvertimeReason       *string
	IsOvertimeApproved   bool
	IsSundayWork         bool
	IsSundayWorkApproved bool
	ApprovedBy           *string
	ApprovedAt           *time.Time
	RejectionReason      *string
	Notes                *string

	CheckInLatitude       *float64
	CheckInLongitude      *float64
	CheckInProofURL       *string
	CheckOutLatitude      *float64
	CheckOutLongitude     *float64
	CheckOutProofURL      *string
	OvertimeStartProofURL *string
	OvertimeEndProofURL   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
}

// RuleView projects the record into the slice the rules engine reads.
func (a *Attendance) RuleView() *rules.RecordView {
	if a == nil {
		return nil
	}
	notes := ""
	if a.Notes != nil {
		notes = *a.Notes
	}
	return &rules.RecordView{
		CheckIn:              a.CheckIn,
		CheckOut:             a.CheckOut,
		OvertimeStart:        a.OvertimeStart,
		OvertimeEnd:          a.OvertimeEnd,
		Notes:                notes,
		ApprovedAt:           a.ApprovedAt,
		OvertimeMinutes:      a.OvertimeMinutes,
		IsOvertimeApproved:   a.IsOvertimeApproved,
		IsSundayWork:         a.IsSundayWork,
		IsSundayWorkApproved: a.IsSundayWorkApproved,
	}
}

// ApprovalView projects the record into the approval gate's input.
func (a *Attendance) ApprovalView() rules.ApprovalView {
	return rules.ApprovalView{
		IsSundayWork:    a.IsSundayWork,
		OvertimeMinutes: a.OvertimeMinutes,
	}
}

// NeedsApproval reports whether the record carries a pending overtime or
// Sunday-work request.
func (a *Attendance) NeedsApproval() bool {
	if a.ApprovalStatus != ApprovalPending {
		return false
	}
	return a.OvertimeMinutes > 0 || a.IsSundayWork
}
