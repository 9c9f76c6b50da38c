package controllers

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
	}
}

func (ctrl *DoctorController) Register(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.Register requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.RegisterDoctor)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.Register(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.Register",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorRegisteredSuccess, response)
}

func (ctrl *DoctorController) Login(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.Login requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.LoginDoctor)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.Login(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.Login",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccess, response)
}

func (ctrl *DoctorController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.ChangePassword requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.ChangePassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	request := new(requests.ChangePassword)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ctrl.DoctorUsecase.ChangePassword(ctx, identity, request)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.ChangePassword",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PasswordChangedSuccess, nil)
}

func (ctrl *DoctorController) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.UpdateEmail requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.UpdateEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	request := new(requests.UpdateEmail)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.UpdateEmail(ctx, identity, request)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.UpdateEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EmailUpdatedSuccess, response)
}

func (ctrl *DoctorController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.ForgotPassword requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.ForgotPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.ForgotPassword)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ctrl.DoctorUsecase.ForgotPassword(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.ForgotPassword",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PasswordResetSuccess, nil)
}

func (ctrl *DoctorController) Profile(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.Profile requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.Profile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.Profile(ctx, identity)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.Profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorProfileFetchedSuccess, response)
}
