package realtime

import (
	"context"
	"fmt"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/responses"
	"sync"

	"go.uber.org/zap"
)

var (
	realtimePublisherInstance contracts.RealtimePublisher
	onceRealtimePublisher     sync.Once
)

type realtimePublisher struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

// NewRealtimePublisher wraps redis pub/sub with the per-doctor channel naming
// scheme. Delivery is at-most-once: subscribers that are offline miss events.
func NewRealtimePublisher(repo contracts.RedisRepository, logger *zap.Logger) contracts.RealtimePublisher {
	onceRealtimePublisher.Do(func() {
		instance := &realtimePublisher{
			redisRepo: repo,
			Log:       logger,
		}
		realtimePublisherInstance = instance
	})
	return realtimePublisherInstance
}

func (p *realtimePublisher) PublishAppointment(ctx context.Context, doctorID string, payload interface{}) {
	p.publish(ctx, doctorID, responses.RealtimeEventAppointment, payload)
}

func (p *realtimePublisher) PublishNotification(ctx context.Context, doctorID string, payload interface{}) {
	p.publish(ctx, doctorID, responses.RealtimeEventNotification, payload)
}

func (p *realtimePublisher) publish(ctx context.Context, doctorID, eventType string, payload interface{}) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	channel := fmt.Sprintf(constvars.RealtimeChannelFormat, doctorID)

	envelope := responses.RealtimeEnvelope{
		Type:    eventType,
		Payload: payload,
	}

	err := p.redisRepo.Publish(ctx, channel, envelope)
	if err != nil {
		p.Log.Error("realtimePublisher.publish error publishing to channel",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingChannelKey, channel),
			zap.Error(err),
		)
		return
	}

	p.Log.Info("realtimePublisher.publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingChannelKey, channel),
	)
}
