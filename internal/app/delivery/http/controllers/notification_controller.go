package controllers

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"healdoctor-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
	}
}

func (ctrl *NotificationController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("NotificationController.Create requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateNotification)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Error("NotificationController.Create invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("NotificationController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.NotificationUsecase.Create(ctx, identity.DoctorID, request)
	if err != nil {
		ctrl.Log.Error("Error in NotificationUsecase.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.NotificationCreatedSuccess, response)
}

func (ctrl *NotificationController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("NotificationController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("NotificationController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var response []responses.Notification
	if r.URL.Query().Get("unread") == "true" {
		response, err = ctrl.NotificationUsecase.FindUnreadForDoctor(ctx, identity)
	} else {
		response, err = ctrl.NotificationUsecase.FindAllForDoctor(ctx, identity)
	}
	if err != nil {
		ctrl.Log.Error("Error in NotificationUsecase.FindAllForDoctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("NotificationController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationFetchedSuccess, response)
}

func (ctrl *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("NotificationController.MarkRead requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	notificationID := chi.URLParam(r, "notificationID")
	ctrl.Log.Info("NotificationController.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ctrl.NotificationUsecase.MarkRead(ctx, identity, notificationID)
	if err != nil {
		ctrl.Log.Error("Error in NotificationUsecase.MarkRead",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationMarkReadSuccess, nil)
}

func (ctrl *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("NotificationController.MarkAllRead requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("NotificationController.MarkAllRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := ctrl.NotificationUsecase.MarkAllRead(ctx, identity)
	if err != nil {
		ctrl.Log.Error("Error in NotificationUsecase.MarkAllRead",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationMarkAllReadSuccess, map[string]int64{"updated": updated})
}
