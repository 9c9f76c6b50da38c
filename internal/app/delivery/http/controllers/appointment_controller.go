package controllers

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"healdoctor-service/internal/pkg/exceptions"
	"healdoctor-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) Book(w http.ResponseWriter, r *http.Request) {
	requestID, identity, ok := ctrl.prepare(w, r, "Book")
	if !ok {
		return
	}

	request := new(requests.BookAppointment)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.Book(ctx, identity, request)
	if err != nil {
		ctrl.respondError(w, requestID, "Book", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentBookedSuccess, response)
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, identity, ok := ctrl.prepare(w, r, "FindAll")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var response []responses.Appointment
	var err error

	query := r.URL.Query()
	day := query.Get("date")
	fromDay, toDay := query.Get("from"), query.Get("to")
	switch {
	case day != "":
		response, err = ctrl.AppointmentUsecase.FindByDay(ctx, identity, day)
	case fromDay != "" && toDay != "":
		response, err = ctrl.AppointmentUsecase.FindByRange(ctx, identity, fromDay, toDay)
	default:
		response, err = ctrl.AppointmentUsecase.FindAll(ctx, identity)
	}
	if err != nil {
		ctrl.respondError(w, requestID, "FindAll", err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFetchedSuccess, response)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, identity, ok := ctrl.prepare(w, r, "FindByID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointmentID := chi.URLParam(r, "appointmentID")
	response, err := ctrl.AppointmentUsecase.FindByID(ctx, identity, appointmentID)
	if err != nil {
		ctrl.respondError(w, requestID, "FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFetchedSuccess, response)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID, identity, ok := ctrl.prepare(w, r, "UpdateStatus")
	if !ok {
		return
	}

	request := new(requests.UpdateAppointmentStatus)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointmentID := chi.URLParam(r, "appointmentID")
	response, err := ctrl.AppointmentUsecase.UpdateStatus(ctx, identity, appointmentID, request)
	if err != nil {
		ctrl.respondError(w, requestID, "UpdateStatus", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentUpdatedSuccess, response)
}

func (ctrl *AppointmentController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctrl.updateFlag(w, r, "UpdatePaymentStatus", ctrl.AppointmentUsecase.UpdatePaymentStatus)
}

func (ctrl *AppointmentController) UpdateTreated(w http.ResponseWriter, r *http.Request) {
	ctrl.updateFlag(w, r, "UpdateTreated", ctrl.AppointmentUsecase.UpdateTreated)
}

func (ctrl *AppointmentController) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	ctrl.updateFlag(w, r, "UpdateAvailability", ctrl.AppointmentUsecase.UpdateAvailability)
}

func (ctrl *AppointmentController) UpdateEmergency(w http.ResponseWriter, r *http.Request) {
	ctrl.updateFlag(w, r, "UpdateEmergency", ctrl.AppointmentUsecase.UpdateEmergency)
}

func (ctrl *AppointmentController) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	requestID, identity, ok := ctrl.prepare(w, r, "UpdateDetails")
	if !ok {
		return
	}

	request := new(requests.UpdateAppointmentDetails)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointmentID := chi.URLParam(r, "appointmentID")
	response, err := ctrl.AppointmentUsecase.UpdateDetails(ctx, identity, appointmentID, request)
	if err != nil {
		ctrl.respondError(w, requestID, "UpdateDetails", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentUpdatedSuccess, response)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID, identity, ok := ctrl.prepare(w, r, "Cancel")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointmentID := chi.URLParam(r, "appointmentID")
	response, err := ctrl.AppointmentUsecase.Cancel(ctx, identity, appointmentID)
	if err != nil {
		ctrl.respondError(w, requestID, "Cancel", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCancelledSuccess, response)
}

type flagOperation func(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error)

func (ctrl *AppointmentController) updateFlag(w http.ResponseWriter, r *http.Request, operation string, apply flagOperation) {
	requestID, identity, ok := ctrl.prepare(w, r, operation)
	if !ok {
		return
	}

	request := new(requests.UpdateAppointmentFlag)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointmentID := chi.URLParam(r, "appointmentID")
	response, err := apply(ctx, identity, appointmentID, request)
	if err != nil {
		ctrl.respondError(w, requestID, operation, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentUpdatedSuccess, response)
}

func (ctrl *AppointmentController) prepare(w http.ResponseWriter, r *http.Request, operation string) (string, *models.Identity, bool) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("AppointmentController." + operation + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return "", nil, false
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		ctrl.Log.Error("AppointmentController."+operation+" identity not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return "", nil, false
	}

	ctrl.Log.Info("AppointmentController."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))
	return requestID, identity, true
}

func (ctrl *AppointmentController) respondError(w http.ResponseWriter, requestID, operation string, err error) {
	ctrl.Log.Error("Error in AppointmentUsecase."+operation,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))

	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
