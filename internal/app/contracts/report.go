package contracts

import (
	"context"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
)

type ReportUsecase interface {
	Generate(ctx context.Context, identity *models.Identity, request *requests.GenerateReport) (*responses.Report, error)
	RunDailyReports(ctx context.Context) error
}
