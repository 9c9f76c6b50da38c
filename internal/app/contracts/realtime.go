package contracts

import "context"

// RealtimePublisher fans out events to per-doctor channels. Publishing is
// best-effort: implementations log failures and never return them to the
// request path.
type RealtimePublisher interface {
	PublishAppointment(ctx context.Context, doctorID string, payload interface{})
	PublishNotification(ctx context.Context, doctorID string, payload interface{})
}
