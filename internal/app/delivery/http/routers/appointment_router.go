package routers

import (
	"healdoctor-service/internal/app/delivery/http/controllers"
	"healdoctor-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate).Post("/", appointmentController.Book)
	router.With(middlewares.Authenticate).Get("/", appointmentController.FindAll)
	router.With(middlewares.Authenticate).Get("/{appointmentID}", appointmentController.FindByID)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/status", appointmentController.UpdateStatus)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/payment", appointmentController.UpdatePaymentStatus)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/treated", appointmentController.UpdateTreated)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/availability", appointmentController.UpdateAvailability)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/emergency", appointmentController.UpdateEmergency)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}", appointmentController.UpdateDetails)
	router.With(middlewares.Authenticate).Delete("/{appointmentID}", appointmentController.Cancel)
}
