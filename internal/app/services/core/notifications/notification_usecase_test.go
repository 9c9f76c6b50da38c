package notifications

import (
	"context"
	"testing"
	"time"

	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Notification, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindUnreadByDoctorID(ctx context.Context, doctorID string) ([]models.Notification, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllReadByDoctorID(ctx context.Context, doctorID string) (int64, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockRealtimePublisher struct {
	mock.Mock
}

func (m *MockRealtimePublisher) PublishAppointment(ctx context.Context, doctorID string, payload interface{}) {
	m.Called(ctx, doctorID, payload)
}

func (m *MockRealtimePublisher) PublishNotification(ctx context.Context, doctorID string, payload interface{}) {
	m.Called(ctx, doctorID, payload)
}

func newTestNotificationUsecase(repo *MockNotificationRepository, publisher *MockRealtimePublisher) *notificationUsecase {
	return &notificationUsecase{
		NotificationRepository: repo,
		RealtimePublisher:      publisher,
		Log:                    zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				NotificationRetentionInDays: 30,
			},
		},
	}
}

var testIdentity = &models.Identity{DoctorID: "DOC-20250314-1234", Email: "doc@clinic.test"}

func TestNotificationUsecase_Create(t *testing.T) {
	t.Run("Publishes To Doctor Channel", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		publisher := new(MockRealtimePublisher)
		uc := newTestNotificationUsecase(repo, publisher)

		repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)
		publisher.On("PublishNotification", mock.Anything, testIdentity.DoctorID, mock.Anything).Return()

		response, err := uc.Create(context.Background(), testIdentity.DoctorID, &requests.CreateNotification{
			Type:    "INFO",
			Title:   "Schedule change",
			Message: "Tomorrow's first slot moved to 10:00.",
		})

		require.NoError(t, err)
		assert.Equal(t, "INFO", response.Type)
		assert.False(t, response.Read)
		publisher.AssertExpectations(t)
	})

	t.Run("SYSTEM Stays Out Of Realtime", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		publisher := new(MockRealtimePublisher)
		uc := newTestNotificationUsecase(repo, publisher)

		repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

		_, err := uc.Create(context.Background(), testIdentity.DoctorID, &requests.CreateNotification{
			Type:    "SYSTEM",
			Title:   "Nightly cleanup",
			Message: "Expired notifications purged.",
		})

		require.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Broadcast Stays Out Of Realtime", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		publisher := new(MockRealtimePublisher)
		uc := newTestNotificationUsecase(repo, publisher)

		repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

		_, err := uc.Create(context.Background(), "", &requests.CreateNotification{
			Type:    "INFO",
			Title:   "Maintenance window",
			Message: "Service restarts at 02:00.",
		})

		require.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Sets Expiry From Retention", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		publisher := new(MockRealtimePublisher)
		uc := newTestNotificationUsecase(repo, publisher)

		var inserted *models.Notification
		repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Notification")).Run(func(args mock.Arguments) {
			inserted = args.Get(1).(*models.Notification)
		}).Return(nil)
		publisher.On("PublishNotification", mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := uc.Create(context.Background(), testIdentity.DoctorID, &requests.CreateNotification{
			Type:    "INFO",
			Title:   "Schedule change",
			Message: "Tomorrow's first slot moved to 10:00.",
		})

		require.NoError(t, err)
		require.NotNil(t, inserted)
		retention := inserted.ExpiryDate.Sub(inserted.CreatedAt)
		assert.Equal(t, 30*24*time.Hour, retention)
	})
}

func TestNotificationUsecase_MarkRead(t *testing.T) {
	t.Run("Marks Own Notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

		notification := &models.Notification{ID: "abc123", DoctorID: testIdentity.DoctorID, Type: models.NotificationTypeInfo}
		repo.On("FindByID", mock.Anything, "abc123").Return(notification, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.IsRead
		})).Return(nil)

		err := uc.MarkRead(context.Background(), testIdentity, "abc123")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Marks Broadcast Notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

		notification := &models.Notification{ID: "abc123", DoctorID: "", Type: models.NotificationTypeInfo}
		repo.On("FindByID", mock.Anything, "abc123").Return(notification, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		err := uc.MarkRead(context.Background(), testIdentity, "abc123")

		require.NoError(t, err)
	})

	t.Run("Another Doctors Notification Reads As Missing", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

		notification := &models.Notification{ID: "abc123", DoctorID: "DOC-20250314-9999", Type: models.NotificationTypeInfo}
		repo.On("FindByID", mock.Anything, "abc123").Return(notification, nil)

		err := uc.MarkRead(context.Background(), testIdentity, "abc123")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

		repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

		err := uc.MarkRead(context.Background(), testIdentity, "missing")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestNotificationUsecase_FindUnread(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

	repo.On("FindUnreadByDoctorID", mock.Anything, testIdentity.DoctorID).Return([]models.Notification{
		{ID: "abc123", DoctorID: testIdentity.DoctorID, Type: models.NotificationTypeInfo, IsRead: false},
	}, nil)

	result, err := uc.FindUnreadForDoctor(context.Background(), testIdentity)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.False(t, result[0].Read)
}

func TestNotificationUsecase_MarkAllRead(t *testing.T) {
	t.Run("Reports Updated Count", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

		repo.On("MarkAllReadByDoctorID", mock.Anything, testIdentity.DoctorID).Return(int64(3), nil)

		updated, err := uc.MarkAllRead(context.Background(), testIdentity)

		require.NoError(t, err)
		assert.Equal(t, int64(3), updated)
	})

	t.Run("Propagates Repository Error", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

		repo.On("MarkAllReadByDoctorID", mock.Anything, testIdentity.DoctorID).Return(int64(0), exceptions.ErrMongoDBUpdateDocument(context.DeadlineExceeded))

		_, err := uc.MarkAllRead(context.Background(), testIdentity)

		assert.Error(t, err)
	})
}

func TestNotificationUsecase_PurgeExpired(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := newTestNotificationUsecase(repo, new(MockRealtimePublisher))

	cutoff := time.Now()
	repo.On("DeleteExpiredBefore", mock.Anything, cutoff).Return(int64(7), nil)

	deleted, err := uc.PurgeExpired(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}
