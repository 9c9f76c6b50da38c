package notifications

import (
	"context"
	"fmt"
	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"healdoctor-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	RealtimePublisher      contracts.RealtimePublisher
	Log                    *zap.Logger
	InternalConfig         *config.InternalConfig
}

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	realtimePublisher contracts.RealtimePublisher,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		instance := &notificationUsecase{
			NotificationRepository: notificationRepository,
			RealtimePublisher:      realtimePublisher,
			Log:                    logger,
			InternalConfig:         internalConfig,
		}
		notificationUsecaseInstance = instance
	})
	return notificationUsecaseInstance
}

// Create stores the notification and fans it out to the doctor's realtime
// channel. SYSTEM notifications are housekeeping records and stay out of the
// realtime stream, as do broadcasts with no target doctor.
func (uc *notificationUsecase) Create(ctx context.Context, doctorID string, request *requests.CreateNotification) (*responses.Notification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	now := time.Now()
	notification := &models.Notification{
		DoctorID:   doctorID,
		Type:       models.NotificationType(request.Type),
		Title:      request.Title,
		Message:    request.Message,
		IsRead:     false,
		CreatedAt:  now,
		ExpiryDate: now.Add(time.Duration(uc.InternalConfig.App.NotificationRetentionInDays) * 24 * time.Hour),
	}

	err := uc.NotificationRepository.Insert(ctx, notification)
	if err != nil {
		uc.Log.Error("notificationUsecase.Create error inserting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := buildNotificationResponse(notification)
	if notification.Type != models.NotificationTypeSystem && doctorID != "" {
		uc.RealtimePublisher.PublishNotification(ctx, doctorID, response)
	}

	uc.Log.Info("notificationUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notification.ID),
	)
	return response, nil
}

func (uc *notificationUsecase) FindAllForDoctor(ctx context.Context, identity *models.Identity) ([]responses.Notification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.FindAllForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	notifications, err := uc.NotificationRepository.FindByDoctorID(ctx, identity.DoctorID)
	if err != nil {
		uc.Log.Error("notificationUsecase.FindAllForDoctor error fetching notifications",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.Notification, 0, len(notifications))
	for i := range notifications {
		result = append(result, *buildNotificationResponse(&notifications[i]))
	}
	return result, nil
}

func (uc *notificationUsecase) FindUnreadForDoctor(ctx context.Context, identity *models.Identity) ([]responses.Notification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.FindUnreadForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	notifications, err := uc.NotificationRepository.FindUnreadByDoctorID(ctx, identity.DoctorID)
	if err != nil {
		uc.Log.Error("notificationUsecase.FindUnreadForDoctor error fetching notifications",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.Notification, 0, len(notifications))
	for i := range notifications {
		result = append(result, *buildNotificationResponse(&notifications[i]))
	}
	return result, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, identity *models.Identity, notificationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)

	notification, err := uc.NotificationRepository.FindByID(ctx, notificationID)
	if err != nil {
		uc.Log.Error("notificationUsecase.MarkRead error fetching notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	// a notification addressed to another doctor is reported as missing
	if notification == nil || (notification.DoctorID != "" && notification.DoctorID != identity.DoctorID) {
		return exceptions.ErrNotificationNotFound(fmt.Errorf("notification %s not visible to doctor %s", notificationID, identity.DoctorID))
	}

	notification.IsRead = true
	err = uc.NotificationRepository.Update(ctx, notification)
	if err != nil {
		uc.Log.Error("notificationUsecase.MarkRead error updating notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("notificationUsecase.MarkRead succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)
	return nil
}

// MarkAllRead flips every unread notification visible to the doctor, broadcasts
// included, and reports how many were touched.
func (uc *notificationUsecase) MarkAllRead(ctx context.Context, identity *models.Identity) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkAllRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	updated, err := uc.NotificationRepository.MarkAllReadByDoctorID(ctx, identity.DoctorID)
	if err != nil {
		uc.Log.Error("notificationUsecase.MarkAllRead error updating notifications",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	uc.Log.Info("notificationUsecase.MarkAllRead succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("updated", updated),
	)
	return updated, nil
}

func (uc *notificationUsecase) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	deleted, err := uc.NotificationRepository.DeleteExpiredBefore(ctx, olderThan)
	if err != nil {
		uc.Log.Error("notificationUsecase.PurgeExpired error deleting notifications",
			zap.Error(err),
		)
		return 0, err
	}

	if deleted > 0 {
		uc.Log.Info("notificationUsecase.PurgeExpired removed expired notifications",
			zap.Int64("deleted", deleted),
		)
	}
	return deleted, nil
}

func buildNotificationResponse(notification *models.Notification) *responses.Notification {
	return &responses.Notification{
		ID:        notification.ID,
		DoctorID:  notification.DoctorID,
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		Read:      notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}
