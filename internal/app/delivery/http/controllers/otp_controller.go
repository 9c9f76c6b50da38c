package controllers

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/exceptions"
	"healdoctor-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type OTPController struct {
	Log        *zap.Logger
	OTPUsecase contracts.OTPUsecase
}

func NewOTPController(logger *zap.Logger, otpUsecase contracts.OTPUsecase) *OTPController {
	return &OTPController{
		Log:        logger,
		OTPUsecase: otpUsecase,
	}
}

func (ctrl *OTPController) Issue(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("OTPController.Issue requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OTPController.Issue called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.IssueOTP)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.OTPUsecase.Issue(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in OTPUsecase.Issue",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OTPIssuedSuccess, response)
}

func (ctrl *OTPController) Validate(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("OTPController.Validate requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OTPController.Validate called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.ValidateOTP)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ctrl.OTPUsecase.Validate(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in OTPUsecase.Validate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OTPValidatedSuccess, nil)
}
