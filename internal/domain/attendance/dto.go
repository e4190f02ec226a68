package attendance

import (
	"mime/multipart"
	"strings"

	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

// captureValidate collects the validation errors shared by every capture
// payload: GPS coordinates plus a proof photo.
func captureValidate(latitude, longitude float64, fileHeader *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if fileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance proof photo is required",
		})
		return errs
	}

	filename := fileHeader.Filename
	dot := strings.LastIndex(filename, ".")
	ext := ""
	if dot >= 0 {
		ext = strings.ToLower(filename[dot:])
	}
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if fileHeader.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance proof photo size must not exceed 10MB",
		})
	}

	return errs
}

type CheckInRequest struct {
	Latitude      float64               `json:"latitude"`
	Longitude     float64               `json:"longitude"`
	ProofPhotoURL *string               `json:"-"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	if errs := captureValidate(r.Latitude, r.Longitude, r.FileHeader); len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude      float64               `json:"latitude"`
	Longitude     float64               `json:"longitude"`
	ProofPhotoURL *string               `json:"-"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	if errs := captureValidate(r.Latitude, r.Longitude, r.FileHeader); len(errs) > 0 {
		return errs
	}
	return nil
}

// OvertimeStartRequest carries the reason and explicit consent alongside the
// capture. The minimum reason length is enforced by the service, which owns
// the configured threshold.
type OvertimeStartRequest struct {
	Latitude         float64               `json:"latitude"`
	Longitude        float64               `json:"longitude"`
	Reason           string                `json:"reason"`
	ConsentConfirmed bool                  `json:"consent_confirmed"`
	ProofPhotoURL    *string               `json:"-"`
	File             multipart.File        `json:"-"`
	FileHeader       *multipart.FileHeader `json:"-"`
}

func (r *OvertimeStartRequest) Validate() error {
	errs := captureValidate(r.Latitude, r.Longitude, r.FileHeader)

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "overtime reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeEndRequest struct {
	Latitude      float64               `json:"latitude"`
	Longitude     float64               `json:"longitude"`
	ProofPhotoURL *string               `json:"-"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *OvertimeEndRequest) Validate() error {
	if errs := captureValidate(r.Latitude, r.Longitude, r.FileHeader); len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkApproveRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "at least one attendance id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID   *string
	DateFrom     *string
	DateTo       *string
	Status       *string
	NeedApproval bool
	Page         int
	Limit        int
}

type MyAttendanceFilter struct {
	Month int
	Year  int
	Page  int
	Limit int
}

type AttendanceResponse struct {
	ID                    string   `json:"id"`
	EmployeeID            string   `json:"employee_id"`
	EmployeeName          *string  `json:"employee_name,omitempty"`
	EmployeeCode          *string  `json:"employee_code,omitempty"`
	Date                  string   `json:"date"`
	CheckIn               *string  `json:"check_in"`
	CheckOut              *string  `json:"check_out"`
	OvertimeStart         *string  `json:"overtime_start"`
	OvertimeEnd           *string  `json:"overtime_end"`
	Status                string   `json:"status"`
	ApprovalStatus        string   `json:"approval_status"`
	IsLate                bool     `json:"is_late"`
	LateMinutes           int      `json:"late_minutes"`
	OvertimeMinutes       int      `json:"overtime_minutes"`
	OvertimeReason        *string  `json:"overtime_reason,omitempty"`
	IsOvertimeApproved    bool     `json:"is_overtime_approved"`
	IsSundayWork          bool     `json:"is_sunday_work"`
	IsSundayWorkApproved  bool     `json:"is_sunday_work_approved"`
	RejectionReason       *string  `json:"rejection_reason,omitempty"`
	Notes                 *string  `json:"notes,omitempty"`
	CheckInProofURL       *string  `json:"check_in_proof_url,omitempty"`
	CheckOutProofURL      *string  `json:"check_out_proof_url,omitempty"`
	OvertimeStartProofURL *string  `json:"overtime_start_proof_url,omitempty"`
	OvertimeEndProofURL   *string  `json:"overtime_end_proof_url,omitempty"`
	CheckInLatitude       *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude      *float64 `json:"check_in_longitude,omitempty"`
}

// TodayResponse is what the capture UI renders: the record so far plus the
// next action derived server-side.
type TodayResponse struct {
	Attendance *AttendanceResponse `json:"attendance"`
	NextAction rules.Action        `json:"next_action"`
	Workday    rules.WorkdayType   `json:"workday"`
}
