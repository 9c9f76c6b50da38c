package requests

import "time"

type BookAppointment struct {
	PatientName         string     `json:"patientName" validate:"required,min=2,max=100"`
	Contact             string     `json:"contact" validate:"required,contact"`
	Email               string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Description         string     `json:"description,omitempty" validate:"omitempty,max=1000"`
	AppointmentDateTime *time.Time `json:"appointmentDateTime,omitempty"`
	PaymentStatus       *bool      `json:"paymentStatus" validate:"required"`
	AvailableAtClinic   *bool      `json:"availableAtClinic" validate:"required"`
}

type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED BOOKED CANCELLED"`
}

type UpdateAppointmentFlag struct {
	Value *bool `json:"value" validate:"required"`
}

type UpdateAppointmentDetails struct {
	PatientName         string     `json:"patientName,omitempty" validate:"omitempty,min=2,max=100"`
	Contact             string     `json:"contact,omitempty" validate:"omitempty,contact"`
	Email               string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Description         string     `json:"description,omitempty" validate:"omitempty,max=1000"`
	AppointmentDateTime *time.Time `json:"appointmentDateTime,omitempty"`
}
