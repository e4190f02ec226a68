package attendance

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/notification"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/storage"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/utils"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

// Geofence is the office location captures must be taken from. A zero
// RadiusMeters disables the check.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	user.UserRepository
	engine         *rules.Engine
	fileStorage    storage.FileStorage
	notifications  notification.Service
	gracePeriod    time.Duration
	minReasonRunes int
	geofence       Geofence
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	engine *rules.Engine,
	fileStorage storage.FileStorage,
	notifications notification.Service,
	gracePeriod time.Duration,
	minReasonRunes int,
	geofence Geofence,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		UserRepository:       userRepo,
		engine:               engine,
		fileStorage:          fileStorage,
		notifications:        notifications,
		gracePeriod:          gracePeriod,
		minReasonRunes:       minReasonRunes,
		geofence:             geofence,
	}
}

// checkGeofence rejects captures taken too far from the office.
func (a *AttendanceServiceImpl) checkGeofence(latitude, longitude float64) error {
	if a.geofence.RadiusMeters <= 0 {
		return nil
	}
	distance := utils.HaversineDistanceMeters(latitude, longitude, a.geofence.Latitude, a.geofence.Longitude)
	if distance > a.geofence.RadiusMeters {
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func claimsFromContext(ctx context.Context) (userID, employeeID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", "", "", fmt.Errorf("role claim is missing or invalid")
	}

	return userID, employeeID, user.Role(roleStr), nil
}

func requireEmployee(ctx context.Context) (string, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if employeeID == "" {
		return "", attendance.ErrUnauthorized
	}
	return employeeID, nil
}

// workingDay truncates now to the calendar day in the engine's zone.
func (a *AttendanceServiceImpl) workingDay(now time.Time) time.Time {
	local := now.In(a.engine.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.engine.Location())
}

// uploadCapture stores one proof photo under a per-employee, per-day prefix.
func (a *AttendanceServiceImpl) uploadCapture(ctx context.Context, employeeID string, day time.Time, step string, file multipart.File, filename string) (*string, error) {
	if file == nil {
		return nil, attendance.ErrMissingProofPhoto
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	path := fmt.Sprintf("attendance/%s/%s/%s%s", employeeID, day.Format("2006-01-02"), step, ext)
	url, err := a.fileStorage.Upload(ctx, file, path, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	return &url, nil
}

func toResponse(att *attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                    att.ID,
		EmployeeID:            att.EmployeeID,
		EmployeeName:          att.EmployeeName,
		EmployeeCode:          att.EmployeeCode,
		Date:                  att.Date.Format("2006-01-02"),
		CheckIn:               timePtrToString(att.CheckIn),
		CheckOut:              timePtrToString(att.CheckOut),
		OvertimeStart:         timePtrToString(att.OvertimeStart),
		OvertimeEnd:           timePtrToString(att.OvertimeEnd),
		Status:                att.Status,
		ApprovalStatus:        att.ApprovalStatus,
		IsLate:                att.IsLate,
		LateMinutes:           att.LateMinutes,
		OvertimeMinutes:       att.OvertimeMinutes,
		OvertimeReason:        att.OvertimeReason,
		IsOvertimeApproved:    att.IsOvertimeApproved,
		IsSundayWork:          att.IsSundayWork,
		IsSundayWorkApproved:  att.IsSundayWorkApproved,
		RejectionReason:       att.RejectionReason,
		Notes:                 att.Notes,
		CheckInProofURL:       att.CheckInProofURL,
		CheckOutProofURL:      att.CheckOutProofURL,
		OvertimeStartProofURL: att.OvertimeStartProofURL,
		OvertimeEndProofURL:   att.OvertimeEndProofURL,
		CheckInLatitude:       att.CheckInLatitude,
		CheckInLongitude:      att.CheckInLongitude,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := requireEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().In(a.engine.Location())
	day := a.workingDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	next := rules.NextAction(existing.RuleView(), a.engine.IsOvertimeCheckIn(now, now))
	if next != rules.ActionCheckIn {
		if existing != nil && existing.CheckIn != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, attendance.ErrActionNotAvailable
	}

	proofURL, err := a.uploadCapture(ctx, employeeID, day, "check_in", req.File, req.FileHeader.Filename)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	lateMinutes := a.engine.LateMinutes(now, now, a.gracePeriod)
	status := attendance.StatusPresent
	if lateMinutes > 0 {
		status = attendance.StatusLate
	}

	checkIn := now

	if existing != nil {
		// Rejected-resubmission branch: the day restarts but the record and
		// its date survive.
		existing.CheckIn = &checkIn
		existing.CheckOut = nil
		existing.OvertimeStart = nil
		existing.OvertimeEnd = nil
		existing.OvertimeMinutes = 0
		existing.OvertimeReason = nil
		existing.IsOvertimeApproved = false
		existing.IsSundayWorkApproved = false
		existing.ApprovedBy = nil
		existing.ApprovedAt = nil
		existing.RejectionReason = nil
		existing.Notes = nil
		existing.ApprovalStatus = attendance.ApprovalPending
		existing.Status = status
		existing.IsLate = lateMinutes > 0
		existing.LateMinutes = lateMinutes
		existing.CheckInLatitude = &req.Latitude
		existing.CheckInLongitude = &req.Longitude
		existing.CheckInProofURL = proofURL

		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		return toResponse(existing), nil
	}

	newAtt := attendance.Attendance{
		EmployeeID:       employeeID,
		Date:             day,
		CheckIn:          &checkIn,
		Status:           status,
		ApprovalStatus:   attendance.ApprovalPending,
		IsLate:           lateMinutes > 0,
		LateMinutes:      lateMinutes,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		CheckInProofURL:  proofURL,
	}

	created, err := a.AttendanceRepository.Create(ctx, newAtt)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(&created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := requireEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().In(a.engine.Location())
	day := a.workingDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if next := rules.NextAction(existing.RuleView(), a.engine.IsOvertimeCheckOut(now, now)); next != rules.ActionCheckOut {
		return attendance.AttendanceResponse{}, attendance.ErrActionNotAvailable
	}

	proofURL, err := a.uploadCapture(ctx, employeeID, day, "check_out", req.File, req.FileHeader.Filename)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut := now
	existing.CheckOut = &checkOut
	existing.CheckOutLatitude = &req.Latitude
	existing.CheckOutLongitude = &req.Longitude
	existing.CheckOutProofURL = proofURL

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(existing), nil
}

// OvertimeStart implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) OvertimeStart(ctx context.Context, req attendance.OvertimeStartRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !validator.MinRunes(req.Reason, a.minReasonRunes) {
		return attendance.AttendanceResponse{}, attendance.ErrReasonTooShort
	}
	if !req.ConsentConfirmed {
		return attendance.AttendanceResponse{}, attendance.ErrConsentRequired
	}

	employeeID, err := requireEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().In(a.engine.Location())
	day := a.workingDay(now)

	if !a.engine.IsOvertimeCheckIn(now, now) {
		return attendance.AttendanceResponse{}, attendance.ErrInsideRegularHours
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	if next := rules.NextAction(existing.RuleView(), true); next != rules.ActionOvertimeStart {
		if existing != nil && existing.OvertimeStart != nil && existing.OvertimeEnd == nil {
			return attendance.AttendanceResponse{}, attendance.ErrOvertimeInProgress
		}
		return attendance.AttendanceResponse{}, attendance.ErrActionNotAvailable
	}

	proofURL, err := a.uploadCapture(ctx, employeeID, day, "overtime_start", req.File, req.FileHeader.Filename)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	overtimeStart := now
	reason := req.Reason
	isSundayWork := a.engine.ClassifyWorkday(now) == rules.Sunday

	if existing == nil {
		// First action of the day: Sundays, holidays, or a day worked
		// entirely past regular hours.
		newAtt := attendance.Attendance{
			EmployeeID:            employeeID,
			Date:                  day,
			OvertimeStart:         &overtimeStart,
			OvertimeReason:        &reason,
			Status:                attendance.StatusPresent,
			ApprovalStatus:        attendance.ApprovalPending,
			IsSundayWork:          isSundayWork,
			CheckInLatitude:       &req.Latitude,
			CheckInLongitude:      &req.Longitude,
			OvertimeStartProofURL: proofURL,
		}
		created, err := a.AttendanceRepository.Create(ctx, newAtt)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toResponse(&created), nil
	}

	existing.OvertimeStart = &overtimeStart
	existing.OvertimeReason = &reason
	existing.IsSundayWork = existing.IsSundayWork || isSundayWork
	existing.ApprovalStatus = attendance.ApprovalPending
	existing.OvertimeStartProofURL = proofURL

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(existing), nil
}

// OvertimeEnd implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) OvertimeEnd(ctx context.Context, req attendance.OvertimeEndRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := requireEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().In(a.engine.Location())
	day := a.workingDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if existing == nil || existing.OvertimeStart == nil {
		return attendance.AttendanceResponse{}, attendance.ErrOvertimeNotStarted
	}
	if existing.OvertimeEnd != nil {
		return attendance.AttendanceResponse{}, attendance.ErrActionNotAvailable
	}

	proofURL, err := a.uploadCapture(ctx, employeeID, day, "overtime_end", req.File, req.FileHeader.Filename)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	overtimeEnd := now
	minutes := a.engine.OvertimeMinutes(*existing.OvertimeStart, overtimeEnd, now)
	// A session that began after the boundary only counts time actually
	// worked, not the whole post-boundary window.
	if span := int(overtimeEnd.Sub(*existing.OvertimeStart).Minutes()); span >= 0 && span < minutes {
		minutes = span
	}

	existing.OvertimeEnd = &overtimeEnd
	existing.OvertimeMinutes = minutes
	existing.ApprovalStatus = attendance.ApprovalPending
	existing.OvertimeEndProofURL = proofURL

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	a.notifyApprovers(ctx, existing)

	return toResponse(existing), nil
}

// notifyApprovers queues a submission notification for every approver.
func (a *AttendanceServiceImpl) notifyApprovers(ctx context.Context, att *attendance.Attendance) {
	if a.notifications == nil || !att.NeedsApproval() {
		return
	}

	approvers, err := a.UserRepository.ListByRoles(ctx, []user.Role{user.RoleAdmin, user.RoleManager, user.RoleForeman})
	if err != nil {
		return
	}

	notifType := notification.TypeOvertimeSubmitted
	title := "Overtime submitted"
	message := fmt.Sprintf("An overtime request of %d minutes is waiting for approval", att.OvertimeMinutes)
	if att.IsSundayWork {
		notifType = notification.TypeSundayWorkSubmitted
		title = "Sunday work submitted"
		message = "A Sunday work request is waiting for approval"
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(approvers))
	for _, approver := range approvers {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: approver.ID,
			Type:        notifType,
			Title:       title,
			Message:     message,
			Data: map[string]interface{}{
				"attendance_id": att.ID,
				"employee_id":   att.EmployeeID,
				"date":          att.Date.Format("2006-01-02"),
			},
		})
	}
	_ = a.notifications.QueueBulkNotification(ctx, reqs)
}

// notifyEmployee queues a decision notification for the record's owner.
func (a *AttendanceServiceImpl) notifyEmployee(ctx context.Context, att *attendance.Attendance, approved bool, reason string) {
	if a.notifications == nil {
		return
	}

	owner, err := a.UserRepository.GetByEmployeeID(ctx, att.EmployeeID)
	if err != nil {
		return
	}

	notifType := notification.TypeAttendanceApproved
	title := "Attendance approved"
	message := fmt.Sprintf("Your attendance for %s has been approved", att.Date.Format("2006-01-02"))
	if !approved {
		notifType = notification.TypeAttendanceRejected
		title = "Attendance rejected"
		message = fmt.Sprintf("Your attendance for %s has been rejected: %s", att.Date.Format("2006-01-02"), reason)
	}

	_ = a.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: owner.ID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"attendance_id": att.ID,
			"date":          att.Date.Format("2006-01-02"),
		},
	})
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	employeeID, err := requireEmployee(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	now := time.Now().In(a.engine.Location())
	day := a.workingDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		NextAction: rules.NextAction(existing.RuleView(), a.engine.IsOvertimeCheckIn(now, now)),
		Workday:    a.engine.ClassifyWorkday(now),
	}
	if existing != nil {
		attResp := toResponse(existing)
		resp.Attendance = &attResp
	}

	return resp, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	_, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !user.ApproverRole(role) {
		return nil, 0, user.ErrApproverRoleRequired
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toResponse(&records[i]))
	}

	return responses, total, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	employeeID, err := requireEmployee(ctx)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now().In(a.engine.Location())
	if filter.Month < 1 || filter.Month > 12 {
		filter.Month = int(now.Month())
	}
	if filter.Year < 2000 {
		filter.Year = now.Year()
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 31
	}

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toResponse(&records[i]))
	}

	return responses, total, nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	_, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !user.ApproverRole(role) && att.EmployeeID != employeeID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return toResponse(&att), nil
}

func (a *AttendanceServiceImpl) approveOne(ctx context.Context, id, approverID string, capabilities rules.ApprovalRole) (*attendance.Attendance, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if att.ApprovalStatus != attendance.ApprovalPending {
		return nil, attendance.ErrAlreadyProcessed
	}
	if !att.NeedsApproval() {
		return nil, attendance.ErrNothingToApprove
	}
	if !a.engine.CanApprove(att.ApprovalView(), capabilities) {
		return nil, attendance.ErrApprovalNotPermitted
	}

	now := time.Now().In(a.engine.Location())
	att.ApprovalStatus = attendance.ApprovalApproved
	att.IsOvertimeApproved = att.OvertimeMinutes > 0
	att.IsSundayWorkApproved = att.IsSundayWork
	att.ApprovedBy = &approverID
	att.ApprovedAt = &now

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	return &att, nil
}

// Approve implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Approve(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	userID, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	capabilities := user.ApprovalCapabilities(role)
	if !capabilities.CanApproveAnything() {
		return attendance.AttendanceResponse{}, user.ErrApproverRoleRequired
	}

	att, err := a.approveOne(ctx, id, userID, capabilities)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notifyEmployee(ctx, att, true, "")

	return toResponse(att), nil
}

// Reject implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.RejectRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	capabilities := user.ApprovalCapabilities(role)
	if !capabilities.CanApproveAnything() {
		return attendance.AttendanceResponse{}, user.ErrApproverRoleRequired
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.ApprovalStatus != attendance.ApprovalPending {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}
	if !att.NeedsApproval() {
		return attendance.AttendanceResponse{}, attendance.ErrNothingToApprove
	}
	if !a.engine.CanApprove(att.ApprovalView(), capabilities) {
		return attendance.AttendanceResponse{}, attendance.ErrApprovalNotPermitted
	}

	now := time.Now().In(a.engine.Location())
	reason := req.Reason
	// The marker in notes keeps the legacy detection path working; the
	// explicit status is what new readers should use.
	notes := fmt.Sprintf("%s: %s", rules.RejectionMarker, reason)

	att.ApprovalStatus = attendance.ApprovalRejected
	att.IsOvertimeApproved = false
	att.IsSundayWorkApproved = false
	att.ApprovedBy = &userID
	att.ApprovedAt = &now
	att.RejectionReason = &reason
	att.Notes = &notes

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	a.notifyEmployee(ctx, &att, false, reason)

	return toResponse(&att), nil
}

// BulkApprove implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BulkApprove(ctx context.Context, req attendance.BulkApproveRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	capabilities := user.ApprovalCapabilities(role)
	if !capabilities.CanApproveAnything() {
		return nil, user.ErrApproverRoleRequired
	}

	responses := make([]attendance.AttendanceResponse, 0, len(req.IDs))
	for _, id := range req.IDs {
		att, err := a.approveOne(ctx, id, userID, capabilities)
		if err != nil {
			// Records already processed in this loop stay approved.
			if errors.Is(err, attendance.ErrAlreadyProcessed) {
				continue
			}
			return responses, fmt.Errorf("failed to approve attendance %s: %w", id, err)
		}
		a.notifyEmployee(ctx, att, true, "")
		responses = append(responses, toResponse(att))
	}

	return responses, nil
}
