package attendance

import "context"

// AttendanceService is the application surface of the daily attendance
// cycle. Every mutation re-derives the state machine and the approval gate
// from the persisted record with the server clock; a client-implied action
// the server's own derivation disagrees with is rejected.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	OvertimeStart(ctx context.Context, req OvertimeStartRequest) (AttendanceResponse, error)
	OvertimeEnd(ctx context.Context, req OvertimeEndRequest) (AttendanceResponse, error)

	Today(ctx context.Context) (TodayResponse, error)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error)
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) ([]AttendanceResponse, int64, error)
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	Approve(ctx context.Context, id string) (AttendanceResponse, error)
	Reject(ctx context.Context, req RejectRequest) (AttendanceResponse, error)
	BulkApprove(ctx context.Context, req BulkApproveRequest) ([]AttendanceResponse, error)
}
