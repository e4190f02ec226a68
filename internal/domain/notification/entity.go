package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeOvertimeSubmitted   NotificationType = "overtime_submitted"
	TypeSundayWorkSubmitted NotificationType = "sunday_work_submitted"
	TypeAttendanceApproved  NotificationType = "attendance_approved"
	TypeAttendanceRejected  NotificationType = "attendance_rejected"
	TypeMarkedAbsent        NotificationType = "marked_absent"
	TypePayrollGenerated    NotificationType = "payroll_generated"
	TypeAdvanceRecorded     NotificationType = "advance_recorded"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeOvertimeSubmitted,
		TypeSundayWorkSubmitted,
		TypeAttendanceApproved,
		TypeAttendanceRejected,
		TypeMarkedAbsent,
		TypePayrollGenerated,
		TypeAdvanceRecorded,
	}
}

// IsValidType reports whether t is a known notification type.
func IsValidType(t NotificationType) bool {
	for _, known := range AllNotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
