package controllers

import (
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"net/http"
)

func requestIDFromRequest(r *http.Request) (string, error) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		return "", exceptions.ErrMissingRequestID(nil)
	}
	return requestID, nil
}

func identityFromRequest(r *http.Request) (*models.Identity, error) {
	doctorID, ok := r.Context().Value(constvars.CONTEXT_DOCTOR_ID_KEY).(string)
	if !ok || doctorID == "" {
		return nil, exceptions.ErrMissingIdentity(nil)
	}
	email, _ := r.Context().Value(constvars.CONTEXT_DOCTOR_EMAIL_KEY).(string)
	return &models.Identity{DoctorID: doctorID, Email: email}, nil
}
