package routers

import (
	"healdoctor-service/internal/app/delivery/http/controllers"
	"healdoctor-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Post("/register", doctorController.Register)
	router.Post("/login", doctorController.Login)
	router.Post("/forgot-password", doctorController.ForgotPassword)
	router.With(middlewares.Authenticate).Get("/profile", doctorController.Profile)
	router.With(middlewares.Authenticate).Patch("/password", doctorController.ChangePassword)
	router.With(middlewares.Authenticate).Patch("/email", doctorController.UpdateEmail)
}
