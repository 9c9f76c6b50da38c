package contracts

import (
	"context"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, identity *models.Identity, request *requests.BookAppointment) (*responses.Appointment, error)
	FindAll(ctx context.Context, identity *models.Identity) ([]responses.Appointment, error)
	FindByDay(ctx context.Context, identity *models.Identity, day string) ([]responses.Appointment, error)
	FindByRange(ctx context.Context, identity *models.Identity, fromDay, toDay string) ([]responses.Appointment, error)
	FindByID(ctx context.Context, identity *models.Identity, appointmentID string) (*responses.Appointment, error)
	UpdateStatus(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error)
	UpdatePaymentStatus(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error)
	UpdateTreated(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error)
	UpdateAvailability(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error)
	UpdateEmergency(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentFlag) (*responses.Appointment, error)
	UpdateDetails(ctx context.Context, identity *models.Identity, appointmentID string, request *requests.UpdateAppointmentDetails) (*responses.Appointment, error)
	Cancel(ctx context.Context, identity *models.Identity, appointmentID string) (*responses.Appointment, error)
}

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) error
	FindByAppointmentID(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error)
	FindAllByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindByDoctorIDWithinWindow(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error)
	ExistsActiveDuplicate(ctx context.Context, doctorID, patientName, contact string, from, to time.Time) (bool, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	CountByDoctorIDWithinWindow(ctx context.Context, doctorID string, from, to time.Time) (int64, error)
}
