package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

type fakeAttendanceRepo struct {
	withoutRecord []string
	created       []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.created = append(f.created, att)
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(_ context.Context, _ string, _ attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByPeriod(_ context.Context, _ string, _, _ int) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListEmployeeIDsWithoutRecord(_ context.Context, _ time.Time) ([]string, error) {
	return f.withoutRecord, nil
}

func testEngine(t *testing.T, holidayFn rules.HolidayFn) *rules.Engine {
	t.Helper()
	weekdayStart, err := rules.ParseTimeOfDay("08:00")
	require.NoError(t, err)
	weekdayEnd, err := rules.ParseTimeOfDay("17:00")
	require.NoError(t, err)
	saturdayStart, err := rules.ParseTimeOfDay("08:00")
	require.NoError(t, err)
	saturdayEnd, err := rules.ParseTimeOfDay("12:00")
	require.NoError(t, err)

	windows := rules.WorkWindows{
		Weekday:  rules.WorkWindow{Start: weekdayStart, End: weekdayEnd},
		Saturday: rules.WorkWindow{Start: saturdayStart, End: saturdayEnd},
	}
	return rules.NewEngine(windows, time.UTC, holidayFn, 120)
}

func TestMarkAbsentForWeekday(t *testing.T) {
	repo := &fakeAttendanceRepo{withoutRecord: []string{"emp-1", "emp-2"}}
	jobs := NewAttendanceJobs(repo, nil, nil, nil, testEngine(t, nil))

	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, jobs.markAbsentForDay(context.Background(), monday))

	require.Len(t, repo.created, 2)
	assert.Equal(t, attendance.StatusAbsent, repo.created[0].Status)
	assert.Equal(t, "emp-1", repo.created[0].EmployeeID)
	assert.True(t, repo.created[0].Date.Equal(monday))
}

func TestMarkAbsentSkipsSunday(t *testing.T) {
	repo := &fakeAttendanceRepo{withoutRecord: []string{"emp-1"}}
	jobs := NewAttendanceJobs(repo, nil, nil, nil, testEngine(t, nil))

	sunday := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, jobs.markAbsentForDay(context.Background(), sunday))
	assert.Empty(t, repo.created)
}

func TestMarkAbsentSkipsHoliday(t *testing.T) {
	independenceDay := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	holidayFn := func(date time.Time) bool {
		return date.Month() == time.August && date.Day() == 17
	}

	repo := &fakeAttendanceRepo{withoutRecord: []string{"emp-1"}}
	jobs := NewAttendanceJobs(repo, nil, nil, nil, testEngine(t, holidayFn))

	require.NoError(t, jobs.markAbsentForDay(context.Background(), independenceDay))
	assert.Empty(t, repo.created)
}
