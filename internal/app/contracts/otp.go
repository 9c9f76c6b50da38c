package contracts

import (
	"context"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
)

type OTPUsecase interface {
	Issue(ctx context.Context, request *requests.IssueOTP) (*responses.OTPIssued, error)
	Validate(ctx context.Context, request *requests.ValidateOTP) error
}

type OTPRepository interface {
	DeleteByIdentifier(ctx context.Context, identifier string) error
	Insert(ctx context.Context, otp *models.OTP) error
	FindByIdentifier(ctx context.Context, identifier string) (*models.OTP, error)
}
