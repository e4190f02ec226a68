package attendance

import "errors"

// Attendance domain errors. Each is a distinct, recoverable per-request
// validation outcome surfaced to the caller with its own message.
var (
	// Daily cycle errors
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out today")
	ErrNotCheckedIn       = errors.New("you have not checked in yet")
	ErrOvertimeNotStarted = errors.New("overtime has not been started")
	ErrOvertimeInProgress = errors.New("overtime is already in progress")
	ErrInsideRegularHours = errors.New("overtime cannot start during regular hours")
	ErrActionNotAvailable = errors.New("requested action does not match the attendance state")

	// Capture errors
	ErrMissingProofPhoto = errors.New("attendance proof photo is required")
	ErrMissingLocation   = errors.New("GPS location is required")
	ErrOutsideGeofence   = errors.New("GPS location is outside the office area")
	ErrReasonTooShort    = errors.New("overtime reason is too short")
	ErrConsentRequired   = errors.New("overtime consent confirmation is required")

	// Approval errors
	ErrApprovalNotPermitted = errors.New("your role cannot approve this request")
	ErrAlreadyProcessed     = errors.New("attendance has already been approved or rejected")
	ErrNothingToApprove     = errors.New("attendance has no pending overtime or Sunday work")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
