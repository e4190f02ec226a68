package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyaprima/hrops-backend-go/internal/domain/notification"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/sse"
)

// fakeRepository is an in-memory notification.Repository.
type fakeRepository struct {
	mu            sync.Mutex
	notifications []*notification.Notification
}

func (f *fakeRepository) Create(ctx context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, ns...)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, notification.ErrNotificationNotFound
}

func (f *fakeRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.Notification
	for _, n := range f.notifications {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, n := range f.notifications {
		if n.RecipientID != userID {
			continue
		}
		for _, id := range ids {
			if n.ID == id {
				n.IsRead = true
				n.ReadAt = &now
			}
		}
	}
	return nil
}

func (f *fakeRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, n := range f.notifications {
		if n.RecipientID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.ID == id && n.RecipientID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeRepository) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo notification.Repository, cfg Config) notification.Service {
	return NewNotificationService(repo, sse.NewHub(), cfg, testLogger())
}

func TestQueueNotificationRejectsUnknownType(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo, Config{})
	defer svc.Stop()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Type:        notification.NotificationType("bogus"),
		Title:       "t",
		Message:     "m",
	})
	assert.ErrorIs(t, err, notification.ErrInvalidNotificationType)
}

func TestQueuedNotificationsFlushOnStop(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo, Config{FlushInterval: time.Hour})

	for i := 0; i < 5; i++ {
		err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "user-1",
			Type:        notification.TypeOvertimeSubmitted,
			Title:       "Overtime submitted",
			Message:     "An overtime request needs review",
		})
		require.NoError(t, err)
	}

	// Stop drains the queue and flushes the workers' batches.
	svc.Stop()

	assert.Equal(t, 5, repo.count())
}

func TestSubscriberReceivesPublishedNotification(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo, Config{BatchSize: 1, FlushInterval: 50 * time.Millisecond})
	defer svc.Stop()

	events, cleanup := svc.Subscribe(context.Background(), "user-9")
	defer cleanup()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-9",
		Type:        notification.TypeAttendanceApproved,
		Title:       "Attendance approved",
		Message:     "Your overtime was approved",
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Contains(t, ev.Data, "attendance_approved")
	case <-time.After(2 * time.Second):
		t.Fatal("no event received before timeout")
	}
}

func TestGetNotificationsPaginationDefaults(t *testing.T) {
	repo := &fakeRepository{}
	for i := 0; i < 3; i++ {
		_ = repo.Create(context.Background(), &notification.Notification{
			ID:          time.Now().Format(time.RFC3339Nano),
			RecipientID: "user-2",
			Type:        notification.TypeMarkedAbsent,
			Title:       "Marked absent",
			Message:     "You were marked absent",
			CreatedAt:   time.Now(),
		})
		time.Sleep(time.Millisecond)
	}
	svc := newTestService(repo, Config{})
	defer svc.Stop()

	result, err := svc.GetNotifications(context.Background(), "user-2", 0, -5, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.UnreadCount)
}

func TestMarkAllAsRead(t *testing.T) {
	repo := &fakeRepository{}
	_ = repo.Create(context.Background(), &notification.Notification{
		ID: "n-1", RecipientID: "user-3", Type: notification.TypePayrollGenerated,
		Title: "Payroll", Message: "Your pay slip is ready", CreatedAt: time.Now(),
	})
	_ = repo.Create(context.Background(), &notification.Notification{
		ID: "n-2", RecipientID: "user-3", Type: notification.TypePayrollGenerated,
		Title: "Payroll", Message: "Your pay slip is ready", CreatedAt: time.Now(),
	})
	svc := newTestService(repo, Config{})
	defer svc.Stop()

	require.NoError(t, svc.MarkAllAsRead(context.Background(), "user-3"))

	count, err := svc.GetUnreadCount(context.Background(), "user-3")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
