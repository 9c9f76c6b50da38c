package contracts

import (
	"context"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	Register(ctx context.Context, request *requests.RegisterDoctor) (*responses.Doctor, error)
	Login(ctx context.Context, request *requests.LoginDoctor) (*responses.Login, error)
	ChangePassword(ctx context.Context, identity *models.Identity, request *requests.ChangePassword) error
	UpdateEmail(ctx context.Context, identity *models.Identity, request *requests.UpdateEmail) (*responses.Doctor, error)
	ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error
	Profile(ctx context.Context, identity *models.Identity) (*responses.Doctor, error)
}

type DoctorRepository interface {
	Insert(ctx context.Context, doctor *models.Doctor) error
	FindByDoctorID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindAll(ctx context.Context) ([]models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
}
