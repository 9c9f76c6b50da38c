package contracts

import (
	"context"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"time"
)

type NotificationUsecase interface {
	Create(ctx context.Context, doctorID string, request *requests.CreateNotification) (*responses.Notification, error)
	FindAllForDoctor(ctx context.Context, identity *models.Identity) ([]responses.Notification, error)
	FindUnreadForDoctor(ctx context.Context, identity *models.Identity) ([]responses.Notification, error)
	MarkRead(ctx context.Context, identity *models.Identity, notificationID string) error
	MarkAllRead(ctx context.Context, identity *models.Identity) (int64, error)
	PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.Notification, error)
	FindUnreadByDoctorID(ctx context.Context, doctorID string) ([]models.Notification, error)
	FindByID(ctx context.Context, notificationID string) (*models.Notification, error)
	Update(ctx context.Context, notification *models.Notification) error
	MarkAllReadByDoctorID(ctx context.Context, doctorID string) (int64, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
