package attendance

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
)

func photoHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	return errs.ToMap()
}

func TestCheckInRequestValid(t *testing.T) {
	req := CheckInRequest{
		Latitude:   -6.2,
		Longitude:  106.8,
		FileHeader: photoHeader("selfie.jpg", 2<<20),
	}
	assert.NoError(t, req.Validate())
}

func TestCheckInRequestCoordinatesOutOfRange(t *testing.T) {
	req := CheckInRequest{
		Latitude:   91,
		Longitude:  -181,
		FileHeader: photoHeader("selfie.png", 1024),
	}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields, "latitude")
	assert.Contains(t, fields, "longitude")
}

func TestCheckInRequestMissingPhoto(t *testing.T) {
	req := CheckInRequest{Latitude: -6.2, Longitude: 106.8}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields, "photo")
}

func TestCheckInRequestPhotoWrongType(t *testing.T) {
	req := CheckInRequest{
		Latitude:   -6.2,
		Longitude:  106.8,
		FileHeader: photoHeader("selfie.gif", 1024),
	}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields["photo"], "jpg")

	req.FileHeader = photoHeader("noextension", 1024)
	fields = fieldErrors(t, req.Validate())
	assert.Contains(t, fields, "photo")
}

func TestCheckInRequestPhotoTooLarge(t *testing.T) {
	req := CheckInRequest{
		Latitude:   -6.2,
		Longitude:  106.8,
		FileHeader: photoHeader("selfie.jpeg", 10<<20+1),
	}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields["photo"], "10MB")
}

func TestOvertimeStartRequestReasonRequired(t *testing.T) {
	req := OvertimeStartRequest{
		Latitude:   -6.2,
		Longitude:  106.8,
		Reason:     "   ",
		FileHeader: photoHeader("selfie.jpg", 1024),
	}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields, "reason")

	req.Reason = "menyelesaikan rekap laporan penjualan bulanan"
	assert.NoError(t, req.Validate())
}

func TestRejectRequestReasonRequired(t *testing.T) {
	req := RejectRequest{ID: "att-1"}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields, "reason")
}

func TestBulkApproveRequestEmptyIDs(t *testing.T) {
	req := BulkApproveRequest{}
	fields := fieldErrors(t, req.Validate())
	assert.Contains(t, fields, "ids")

	req.IDs = []string{"att-1", "att-2"}
	assert.NoError(t, req.Validate())
}
