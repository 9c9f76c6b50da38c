package routers

import (
	"healdoctor-service/internal/app/delivery/http/controllers"
	"healdoctor-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOTPRoutes(router chi.Router, _ *middlewares.Middlewares, otpController *controllers.OTPController) {
	router.Post("/", otpController.Issue)
	router.Post("/validate", otpController.Validate)
}
