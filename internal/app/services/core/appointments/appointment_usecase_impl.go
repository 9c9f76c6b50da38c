package appointments

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
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	NotificationUsecase   contracts.NotificationUsecase
	RealtimePublisher     contracts.RealtimePublisher
	LockerService         contracts.LockerService
	Dispatcher            contracts.Dispatcher
	MailerService         contracts.MailerService
	Log                   *zap.Logger
	InternalConfig        *config.InternalConfig
	Location              *time.Location
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notificationUsecase contracts.NotificationUsecase,
	realtimePublisher contracts.RealtimePublisher,
	lockerService contracts.LockerService,
	dispatcherService contracts.Dispatcher,
	mailerService contracts.MailerService,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			NotificationUsecase:   notificationUsecase,
			RealtimePublisher:     realtimePublisher,
			LockerService:         lockerService,
			Dispatcher:            dispatcherService,
			MailerService:         mailerService,
			Log:                   logger,
			InternalConfig:        internalConfig,
			Location:              location,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

// Book creates an ACCEPTED appointment for the calling doctor. The duplicate
// guard runs under a redis lock keyed by (doctor, patient, contact, day) so
// two concurrent requests for the same patient cannot both pass the
// exists-check.
func (uc *appointmentUsecase) Book(ctx context.Context, identity *models.Identity, request *requests.BookAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	now := time.Now().In(uc.Location)
	appointmentDateTime := now
	if request.AppointmentDateTime != nil {
		appointmentDateTime = request.AppointmentDateTime.In(uc.Location)
	}

	day := appointmentDateTime.Format(constvars.DayFormat)
	lockKey := fmt.Sprintf(constvars.BookingLockKeyFormat, identity.DoctorID, request.PatientName, request.Contact, day)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSecond) * time.Second

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book error acquiring booking lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrBookingInProgress(fmt.Errorf("lock %s held by another booking", lockKey))
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("appointmentUsecase.Book error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	windowStart, windowEnd := utils.DayWindow(appointmentDateTime, uc.Location)
	duplicate, err := uc.AppointmentRepository.ExistsActiveDuplicate(ctx, identity.DoctorID, request.PatientName, request.Contact, windowStart, windowEnd)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book error checking duplicates",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if duplicate {
		return nil, exceptions.ErrDuplicateBooking(fmt.Errorf("active appointment exists for %s/%s on %s", request.PatientName, request.Contact, day))
	}

	appointmentID, err := utils.GenerateAppointmentID(identity.DoctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book error generating appointment id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment := &models.Appointment{
		AppointmentID:       appointmentID,
		DoctorID:            identity.DoctorID,
		PatientName:         request.PatientName,
		Contact:             request.Contact,
		Email:               request.Email,
		Description:         request.Description,
		AppointmentDateTime: appointmentDateTime,
		BookingDateTime:     now,
		AvailableAtClinic:   *request.AvailableAtClinic,
		Treated:             false,
		Status:              models.AppointmentStatusAccepted,
		AppointmentType:     models.AppointmentTypeInPerson,
		PaymentStatus:       *request.PaymentStatus,
		IsEmergency:         false,
	}

	err = uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := buildAppointmentResponse(appointment)
	uc.publishIfToday(ctx, appointment)
	uc.sendBookingEmail(ctx, appointment)

	uc.Log.Info("appointmentUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.AppointmentID),
	)
	return response, nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, identity *models.Identity) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	appointments, err := uc.AppointmentRepository.FindAllByDoctorID(ctx, identity.DoctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAll error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return buildAppointmentResponses(appointments), nil
}

func (uc *appointmentUsecase) FindByDay(ctx context.Context, identity *models.Identity, day string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByDay called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	windowStart, windowEnd, err := utils.DayWindowFromString(day, uc.Location)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.AppointmentRepository.FindByDoctorIDWithinWindow(ctx, identity.DoctorID, windowStart, windowEnd)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByDay error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return buildAppointmentResponses(appointments), nil
}

// FindByRange lists appointments between the start of fromDay and the end of
// toDay, both inclusive.
func (uc *appointmentUsecase) FindByRange(ctx context.Context, identity *models.Identity, fromDay, toDay string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByRange called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	windowStart, _, err := utils.DayWindowFromString(fromDay, uc.Location)
	if err != nil {
		return nil, err
	}
	_, windowEnd, err := utils.DayWindowFromString(toDay, uc.Location)
	if err != nil {
		return nil, err
	}
	if windowEnd.Before(windowStart) {
		return nil, exceptions.ErrCannotParseDate(fmt.Errorf("range end %s precedes start %s", toDay, fromDay))
	}

	appointments, err := uc.AppointmentRepository.FindByDoctorIDWithinWindow(ctx, identity.DoctorID, windowStart, windowEnd)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByRange error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return buildAppointmentResponses(appointments), nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, identity *models.Identity, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}
	return buildAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.Status = models.AppointmentStatus(request.Status)
	return uc.persistAndPublish(ctx, appointment, "UpdateStatus")
}

// UpdatePaymentStatus only accepts payment for appointments still marked
// ACCEPTED. Re-marking an already-paid appointment and reverting to unpaid
// carry no precondition.
func (uc *appointmentUsecase) UpdatePaymentStatus(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	if *request.Value && !appointment.PaymentStatus && appointment.Status != models.AppointmentStatusAccepted {
		return nil, exceptions.ErrBusinessRule(constvars.ErrClientPaymentNotAccepted)
	}

	appointment.PaymentStatus = *request.Value
	return uc.persistAndPublish(ctx, appointment, "UpdatePaymentStatus")
}

// UpdateTreated marks the visit complete. Treating requires payment received,
// the patient present at the clinic, and an ACCEPTED appointment. Unsetting
// clears the treated timestamp.
func (uc *appointmentUsecase) UpdateTreated(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	if *request.Value {
		if !appointment.PaymentStatus {
			return nil, exceptions.ErrBusinessRule(constvars.ErrClientTreatedPaymentPending)
		}
		if !appointment.AvailableAtClinic {
			return nil, exceptions.ErrBusinessRule(constvars.ErrClientTreatedNotAtClinic)
		}
		if appointment.Status != models.AppointmentStatusAccepted {
			return nil, exceptions.ErrBusinessRule(constvars.ErrClientTreatedNotAccepted)
		}
		treatedAt := time.Now().In(uc.Location)
		appointment.Treated = true
		appointment.TreatedDateTime = &treatedAt
	} else {
		appointment.Treated = false
		appointment.TreatedDateTime = nil
	}

	return uc.persistAndPublish(ctx, appointment, "UpdateTreated")
}

func (uc *appointmentUsecase) UpdateAvailability(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.Treated {
		return nil, exceptions.ErrBusinessRule(constvars.ErrClientAvailabilityTreated)
	}
	if appointment.Status != models.AppointmentStatusAccepted {
		return nil, exceptions.ErrBusinessRule(constvars.ErrClientAvailabilityNotAccepted)
	}

	appointment.AvailableAtClinic = *request.Value
	return uc.persistAndPublish(ctx, appointment, "UpdateAvailability")
}

// UpdateEmergency is a no-op when the flag already holds the requested value,
// so repeated calls do not re-notify.
func (uc *appointmentUsecase) UpdateEmergency(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.IsEmergency == *request.Value {
		return buildAppointmentResponse(appointment), nil
	}

	appointment.IsEmergency = *request.Value
	response, err := uc.persistAndPublish(ctx, appointment, "UpdateEmergency")
	if err != nil {
		return nil, err
	}

	if *request.Value {
		uc.createEmergencyNotification(ctx, appointment)
	}
	return response, nil
}

func (uc *appointmentUsecase) UpdateDetails(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentDetails) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	if request.PatientName != "" {
		appointment.PatientName = request.PatientName
	}
	if request.Contact != "" {
		appointment.Contact = request.Contact
	}
	if request.Email != "" {
		appointment.Email = request.Email
	}
	if request.Description != "" {
		appointment.Description = request.Description
	}
	if request.AppointmentDateTime != nil {
		appointment.AppointmentDateTime = request.AppointmentDateTime.In(uc.Location)
	}

	return uc.persistAndPublish(ctx, appointment, "UpdateDetails")
}

// Cancel refuses once the patient is treated or the payment is in, matching
// the refund-free flow of the front desk.
func (uc *appointmentUsecase) Cancel(ctx context.Context, identity *models.Identity, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.findOwned(ctx, identity, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.Treated {
		return nil, exceptions.ErrBusinessRule(constvars.ErrClientCancelAlreadyTreated)
	}
	if appointment.PaymentStatus {
		return nil, exceptions.ErrBusinessRule(constvars.ErrClientCancelPaymentReceived)
	}

	appointment.Status = models.AppointmentStatusCancelled
	return uc.persistAndPublish(ctx, appointment, "Cancel")
}

func (uc *appointmentUsecase) findOwned(ctx context.Context, identity *models.Identity, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByAppointmentID(ctx, identity.DoctorID, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.findOwned error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found for doctor %s", appointmentID, identity.DoctorID))
	}
	return appointment, nil
}

func (uc *appointmentUsecase) persistAndPublish(ctx context.Context, appointment *models.Appointment, operation string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.AppointmentRepository.Update(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase."+operation+" error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.AppointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishIfToday(ctx, appointment)

	uc.Log.Info("appointmentUsecase."+operation+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.AppointmentID),
	)
	return buildAppointmentResponse(appointment), nil
}

// publishIfToday fans the appointment out to the doctor's realtime channel,
// but only when it is scheduled for the current day. Off-day mutations reach
// clients through the regular list endpoints.
func (uc *appointmentUsecase) publishIfToday(ctx context.Context, appointment *models.Appointment) {
	if !utils.IsSameDay(appointment.AppointmentDateTime, time.Now(), uc.Location) {
		return
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	doctorID := appointment.DoctorID
	payload := buildAppointmentResponse(appointment)

	uc.Dispatcher.Submit("appointment.publish_realtime",
		func(taskCtx context.Context) error {
			taskCtx = context.WithValue(taskCtx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
			uc.RealtimePublisher.PublishAppointment(taskCtx, doctorID, payload)
			return nil
		},
		func(err error) {
			uc.Log.Error("appointmentUsecase.publishIfToday failed to publish",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, payload.AppointmentID),
				zap.Error(err),
			)
		},
	)
}

func (uc *appointmentUsecase) sendBookingEmail(ctx context.Context, appointment *models.Appointment) {
	if appointment.Email == "" {
		return
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	payload := &requests.EmailPayload{
		To:       appointment.Email,
		Subject:  constvars.EmailSubjectWelcome,
		Template: constvars.EmailTemplateGeneric,
		Variables: map[string]string{
			"Name": appointment.PatientName,
			"Message": fmt.Sprintf(
				"Your appointment %s is confirmed for %s.",
				appointment.AppointmentID,
				appointment.AppointmentDateTime.Format(time.RFC1123),
			),
		},
	}

	uc.Dispatcher.Submit("appointment.send_booking_email",
		func(taskCtx context.Context) error {
			return uc.MailerService.Enqueue(taskCtx, payload)
		},
		func(err error) {
			uc.Log.Error("appointmentUsecase.sendBookingEmail failed to enqueue email",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.AppointmentID),
				zap.Error(err),
			)
		},
	)
}

func (uc *appointmentUsecase) createEmergencyNotification(ctx context.Context, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	doctorID := appointment.DoctorID
	notificationRequest := &requests.CreateNotification{
		Type:    string(models.NotificationTypeEmergency),
		Title:   "Emergency appointment",
		Message: fmt.Sprintf("Appointment %s for %s was flagged as an emergency.", appointment.AppointmentID, appointment.PatientName),
	}

	uc.Dispatcher.Submit("appointment.emergency_notification",
		func(taskCtx context.Context) error {
			taskCtx = context.WithValue(taskCtx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
			_, err := uc.NotificationUsecase.Create(taskCtx, doctorID, notificationRequest)
			return err
		},
		func(err error) {
			uc.Log.Error("appointmentUsecase.createEmergencyNotification failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.AppointmentID),
				zap.Error(err),
			)
		},
	)
}

func buildAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		AppointmentID:       appointment.AppointmentID,
		DoctorID:            appointment.DoctorID,
		PatientName:         appointment.PatientName,
		Contact:             appointment.Contact,
		Email:               appointment.Email,
		Description:         appointment.Description,
		Status:              string(appointment.Status),
		AppointmentType:     string(appointment.AppointmentType),
		PaymentStatus:       appointment.PaymentStatus,
		Treated:             appointment.Treated,
		AvailableAtClinic:   appointment.AvailableAtClinic,
		IsEmergency:         appointment.IsEmergency,
		AppointmentDateTime: appointment.AppointmentDateTime,
		BookingDateTime:     appointment.BookingDateTime,
		TreatedDateTime:     appointment.TreatedDateTime,
	}
}

func buildAppointmentResponses(appointments []models.Appointment) []responses.Appointment {
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *buildAppointmentResponse(&appointments[i]))
	}
	return result
}
