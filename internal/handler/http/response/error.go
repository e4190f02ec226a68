package response

import (
	"errors"
	"net/http"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/auth"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/notification"
	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		NotFound(w, "No account is registered for this email")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrApproverRoleRequired):
		Forbidden(w, "Approver role required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrNIKExists):
		Conflict(w, "NIK already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrOvertimeNotStarted),
		errors.Is(err, attendance.ErrOvertimeInProgress),
		errors.Is(err, attendance.ErrInsideRegularHours),
		errors.Is(err, attendance.ErrActionNotAvailable),
		errors.Is(err, attendance.ErrMissingProofPhoto),
		errors.Is(err, attendance.ErrMissingLocation),
		errors.Is(err, attendance.ErrOutsideGeofence),
		errors.Is(err, attendance.ErrReasonTooShort),
		errors.Is(err, attendance.ErrConsentRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrApprovalNotPermitted):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyProcessed),
		errors.Is(err, attendance.ErrNothingToApprove):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrPayrollAlreadyFinal):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrAdvanceNotFound):
		NotFound(w, "Salary advance not found")
	case errors.Is(err, payroll.ErrAdvanceExceedsSalary),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidAmount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrSoftLoanNotFound):
		NotFound(w, "Soft loan not found")
	case errors.Is(err, payroll.ErrSoftLoanAlreadySettled):
		Conflict(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this notification")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
