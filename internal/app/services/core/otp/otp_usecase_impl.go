package otp

import (
	"context"
	"fmt"
	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/app/services/shared/ratelimiter"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"healdoctor-service/internal/pkg/exceptions"
	"healdoctor-service/internal/pkg/utils"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	otpUsecaseInstance contracts.OTPUsecase
	onceOTPUsecase     sync.Once
)

type otpUsecase struct {
	OTPRepository  contracts.OTPRepository
	MailerService  contracts.MailerService
	Dispatcher     contracts.Dispatcher
	IssueLimiter   *ratelimiter.KeyedLimiter
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
}

func NewOTPUsecase(
	otpRepository contracts.OTPRepository,
	mailerService contracts.MailerService,
	dispatcherService contracts.Dispatcher,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.OTPUsecase {
	onceOTPUsecase.Do(func() {
		instance := &otpUsecase{
			OTPRepository:  otpRepository,
			MailerService:  mailerService,
			Dispatcher:     dispatcherService,
			IssueLimiter:   ratelimiter.NewKeyedLimiter(internalConfig.OTP.IssuePerMinuteLimit, internalConfig.OTP.IssueBurst),
			Log:            logger,
			InternalConfig: internalConfig,
		}
		otpUsecaseInstance = instance
	})
	return otpUsecaseInstance
}

// Issue replaces any live code for the identifier with a fresh one, so at most
// one code is valid per identifier at any time.
func (uc *otpUsecase) Issue(ctx context.Context, request *requests.IssueOTP) (*responses.OTPIssued, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("otpUsecase.Issue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Identifier),
	)

	if !uc.IssueLimiter.Allow(request.Identifier) {
		err := exceptions.ErrOTPRateLimited(fmt.Errorf("identifier %s over issuance limit", request.Identifier))
		uc.Log.Warn("otpUsecase.Issue rate limited",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentifierKey, request.Identifier),
		)
		return nil, err
	}

	code, err := utils.GenerateOTP(uc.InternalConfig.OTP.Length)
	if err != nil {
		uc.Log.Error("otpUsecase.Issue error generating otp",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	expirationTime := time.Now().Add(time.Duration(uc.InternalConfig.OTP.ExpTimeInMinute) * time.Minute)
	otpModel := &models.OTP{
		Identifier:     request.Identifier,
		Code:           code,
		ExpirationTime: expirationTime,
		CreatedAt:      time.Now(),
	}

	err = uc.OTPRepository.DeleteByIdentifier(ctx, request.Identifier)
	if err != nil {
		uc.Log.Error("otpUsecase.Issue error deleting stale otp records",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.OTPRepository.Insert(ctx, otpModel)
	if err != nil {
		uc.Log.Error("otpUsecase.Issue error inserting otp record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	identifier := request.Identifier
	payload := &requests.EmailPayload{
		To:       identifier,
		Subject:  constvars.EmailSubjectOTP,
		Template: constvars.EmailTemplateOTP,
		Variables: map[string]string{
			"Code":             code,
			"ExpiresInMinutes": strconv.Itoa(uc.InternalConfig.OTP.ExpTimeInMinute),
		},
	}
	uc.Dispatcher.Submit("otp.send_email",
		func(taskCtx context.Context) error {
			return uc.MailerService.Enqueue(taskCtx, payload)
		},
		func(err error) {
			uc.Log.Error("otpUsecase.Issue failed to enqueue otp email",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingIdentifierKey, identifier),
				zap.Error(err),
			)
		},
	)

	uc.Log.Info("otpUsecase.Issue succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Identifier),
	)
	return &responses.OTPIssued{
		Identifier:     otpModel.Identifier,
		ExpirationTime: otpModel.ExpirationTime,
	}, nil
}

// Validate consumes the code on success. Expired codes are deleted on sight so
// a retry with the same code reports not-found rather than expired.
func (uc *otpUsecase) Validate(ctx context.Context, request *requests.ValidateOTP) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("otpUsecase.Validate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Identifier),
	)

	otpModel, err := uc.OTPRepository.FindByIdentifier(ctx, request.Identifier)
	if err != nil {
		uc.Log.Error("otpUsecase.Validate error finding otp record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if otpModel == nil {
		return exceptions.ErrOTPNotFound(fmt.Errorf("no otp for identifier %s", request.Identifier))
	}

	if time.Now().After(otpModel.ExpirationTime) {
		if delErr := uc.OTPRepository.DeleteByIdentifier(ctx, request.Identifier); delErr != nil {
			uc.Log.Error("otpUsecase.Validate error deleting expired otp",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(delErr),
			)
			return delErr
		}
		return exceptions.ErrOTPExpired(fmt.Errorf("otp for identifier %s expired at %s", request.Identifier, otpModel.ExpirationTime))
	}

	if otpModel.Code != request.Code {
		return exceptions.ErrOTPMismatch(fmt.Errorf("otp mismatch for identifier %s", request.Identifier))
	}

	err = uc.OTPRepository.DeleteByIdentifier(ctx, request.Identifier)
	if err != nil {
		uc.Log.Error("otpUsecase.Validate error consuming otp",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("otpUsecase.Validate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Identifier),
	)
	return nil
}
