package doctors

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
	"healdoctor-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

type doctorUsecase struct {
	DoctorRepository    contracts.DoctorRepository
	OTPUsecase          contracts.OTPUsecase
	NotificationUsecase contracts.NotificationUsecase
	MailerService       contracts.MailerService
	Dispatcher          contracts.Dispatcher
	Log                 *zap.Logger
	InternalConfig      *config.InternalConfig
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	otpUsecase contracts.OTPUsecase,
	notificationUsecase contracts.NotificationUsecase,
	mailerService contracts.MailerService,
	dispatcherService contracts.Dispatcher,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository:    doctorRepository,
			OTPUsecase:          otpUsecase,
			NotificationUsecase: notificationUsecase,
			MailerService:       mailerService,
			Dispatcher:          dispatcherService,
			Log:                 logger,
			InternalConfig:      internalConfig,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

// Register creates an account after the email is proven via OTP.
func (uc *doctorUsecase) Register(ctx context.Context, request *requests.RegisterDoctor) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Email),
	)

	err := uc.OTPUsecase.Validate(ctx, &requests.ValidateOTP{Identifier: request.Email, Code: request.OTP})
	if err != nil {
		return nil, err
	}

	existing, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("doctorUsecase.Register error checking email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", request.Email))
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	doctorID, err := utils.GenerateDoctorID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doctor := &models.Doctor{
		DoctorID:  doctorID,
		Name:      request.Name,
		Email:     request.Email,
		Password:  hashedPassword,
		Specialty: request.Specialty,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.DoctorRepository.Insert(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.Register error inserting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.sendEmailAsync(requestID, doctor.Email, constvars.EmailSubjectWelcome, map[string]string{
		"Name":    doctor.Name,
		"Message": "Your account is ready. You can now sign in and manage your appointments.",
	})
	uc.recordNotificationAsync(requestID, doctor.DoctorID, string(models.NotificationTypeSystem),
		"Welcome aboard", "Your account was created and is ready to use.")

	uc.Log.Info("doctorUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.DoctorID),
	)
	return buildDoctorResponse(doctor), nil
}

func (uc *doctorUsecase) Login(ctx context.Context, request *requests.LoginDoctor) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Email),
	)

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("doctorUsecase.Login error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrInvalidUsernameOrPassword(fmt.Errorf("no doctor with email %s", request.Email))
	}

	err = utils.ComparePassword(doctor.Password, request.Password)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(doctor.DoctorID, doctor.Email, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		uc.Log.Error("doctorUsecase.Login error signing token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.DoctorID),
	)
	return &responses.Login{
		Token:  token,
		Doctor: *buildDoctorResponse(doctor),
	}, nil
}

func (uc *doctorUsecase) ChangePassword(ctx context.Context, identity *models.Identity, request *requests.ChangePassword) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ChangePassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	doctor, err := uc.findDoctor(ctx, identity.DoctorID)
	if err != nil {
		return err
	}

	err = utils.ComparePassword(doctor.Password, request.OldPassword)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}

	doctor.Password = hashedPassword
	doctor.UpdatedAt = time.Now()
	err = uc.DoctorRepository.Update(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.ChangePassword error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.sendEmailAsync(requestID, doctor.Email, constvars.EmailSubjectPasswordChange, map[string]string{
		"Name":    doctor.Name,
		"Message": "Your password was changed. If this was not you, contact support immediately.",
	})
	uc.recordNotificationAsync(requestID, doctor.DoctorID, string(models.NotificationTypeInfo),
		"Password changed", "Your account password was changed.")
	return nil
}

// UpdateEmail requires an OTP issued to the new address, proving the doctor
// controls it before the switch.
func (uc *doctorUsecase) UpdateEmail(ctx context.Context, identity *models.Identity, request *requests.UpdateEmail) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	err := uc.OTPUsecase.Validate(ctx, &requests.ValidateOTP{Identifier: request.NewEmail, Code: request.OTP})
	if err != nil {
		return nil, err
	}

	existing, err := uc.DoctorRepository.FindByEmail(ctx, request.NewEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.DoctorID != identity.DoctorID {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", request.NewEmail))
	}

	doctor, err := uc.findDoctor(ctx, identity.DoctorID)
	if err != nil {
		return nil, err
	}

	previousEmail := doctor.Email
	doctor.Email = request.NewEmail
	doctor.UpdatedAt = time.Now()
	err = uc.DoctorRepository.Update(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.UpdateEmail error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.sendEmailAsync(requestID, previousEmail, constvars.EmailSubjectEmailChange, map[string]string{
		"Name":    doctor.Name,
		"Message": fmt.Sprintf("Your sign-in email was changed to %s.", doctor.Email),
	})
	uc.recordNotificationAsync(requestID, doctor.DoctorID, string(models.NotificationTypeInfo),
		"Email changed", fmt.Sprintf("Your sign-in email was changed to %s.", doctor.Email))
	return buildDoctorResponse(doctor), nil
}

func (uc *doctorUsecase) ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ForgotPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentifierKey, request.Email),
	)

	err := uc.OTPUsecase.Validate(ctx, &requests.ValidateOTP{Identifier: request.Email, Code: request.OTP})
	if err != nil {
		return err
	}

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("no doctor with email %s", request.Email))
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}

	doctor.Password = hashedPassword
	doctor.UpdatedAt = time.Now()
	err = uc.DoctorRepository.Update(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.ForgotPassword error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.sendEmailAsync(requestID, doctor.Email, constvars.EmailSubjectPasswordChange, map[string]string{
		"Name":    doctor.Name,
		"Message": "Your password was reset. If this was not you, contact support immediately.",
	})
	uc.recordNotificationAsync(requestID, doctor.DoctorID, string(models.NotificationTypeInfo),
		"Password reset", "Your account password was reset.")
	return nil
}

func (uc *doctorUsecase) Profile(ctx context.Context, identity *models.Identity) (*responses.Doctor, error) {
	doctor, err := uc.findDoctor(ctx, identity.DoctorID)
	if err != nil {
		return nil, err
	}
	return buildDoctorResponse(doctor), nil
}

func (uc *doctorUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}
	return doctor, nil
}

func (uc *doctorUsecase) sendEmailAsync(requestID, to, subject string, variables map[string]string) {
	payload := &requests.EmailPayload{
		To:        to,
		Subject:   subject,
		Template:  constvars.EmailTemplateGeneric,
		Variables: variables,
	}
	uc.Dispatcher.Submit("doctor.send_email",
		func(taskCtx context.Context) error {
			return uc.MailerService.Enqueue(taskCtx, payload)
		},
		func(err error) {
			uc.Log.Error("doctorUsecase.sendEmailAsync failed to enqueue email",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEmailToKey, to),
				zap.Error(err),
			)
		},
	)
}

func (uc *doctorUsecase) recordNotificationAsync(requestID, doctorID, notificationType, title, message string) {
	request := &requests.CreateNotification{
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	uc.Dispatcher.Submit("doctor.record_notification",
		func(taskCtx context.Context) error {
			_, err := uc.NotificationUsecase.Create(taskCtx, doctorID, request)
			return err
		},
		func(err error) {
			uc.Log.Error("doctorUsecase.recordNotificationAsync failed to create notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctorID),
				zap.Error(err),
			)
		},
	)
}

func buildDoctorResponse(doctor *models.Doctor) *responses.Doctor {
	return &responses.Doctor{
		DoctorID:  doctor.DoctorID,
		Name:      doctor.Name,
		Email:     doctor.Email,
		Specialty: doctor.Specialty,
		CreatedAt: doctor.CreatedAt,
	}
}
