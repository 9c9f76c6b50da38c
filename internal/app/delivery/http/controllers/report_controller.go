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

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
}

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase) *ReportController {
	return &ReportController{
		Log:           logger,
		ReportUsecase: reportUsecase,
	}
}

func (ctrl *ReportController) Generate(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromRequest(r)
	if err != nil {
		ctrl.Log.Error("ReportController.Generate requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ReportController.Generate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID))

	request := new(requests.GenerateReport)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.ReportUsecase.Generate(ctx, identity, request)
	if err != nil {
		ctrl.Log.Error("Error in ReportUsecase.Generate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGeneratedSuccess, response)
}
