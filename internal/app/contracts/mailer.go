package contracts

import (
	"context"
	"healdoctor-service/internal/pkg/dto/requests"
)

type MailerService interface {
	Enqueue(ctx context.Context, payload *requests.EmailPayload) error
}

type EmailSender interface {
	Send(ctx context.Context, payload *requests.EmailPayload) error
}
