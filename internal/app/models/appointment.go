package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusAccepted  AppointmentStatus = "ACCEPTED"
	AppointmentStatusBooked    AppointmentStatus = "BOOKED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusAccepted, AppointmentStatusBooked, AppointmentStatusCancelled:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentTypeInPerson AppointmentType = "IN_PERSON"
)

// Appointment is one scheduled patient visit owned by a single doctor.
// AppointmentID, DoctorID and BookingDateTime are assigned at creation and
// never reassigned.
type Appointment struct {
	ID                  string            `json:"-" bson:"_id,omitempty"`
	AppointmentID       string            `json:"appointmentId" bson:"appointmentId"`
	DoctorID            string            `json:"doctorId" bson:"doctorId"`
	PatientName         string            `json:"patientName" bson:"patientName"`
	Contact             string            `json:"contact" bson:"contact"`
	Email               string            `json:"email,omitempty" bson:"email,omitempty"`
	Description         string            `json:"description,omitempty" bson:"description,omitempty"`
	AppointmentDateTime time.Time         `json:"appointmentDateTime" bson:"appointmentDateTime"`
	BookingDateTime     time.Time         `json:"bookingDateTime" bson:"bookingDateTime"`
	AvailableAtClinic   bool              `json:"availableAtClinic" bson:"availableAtClinic"`
	Treated             bool              `json:"treated" bson:"treated"`
	TreatedDateTime     *time.Time        `json:"treatedDateTime,omitempty" bson:"treatedDateTime,omitempty"`
	Status              AppointmentStatus `json:"status" bson:"status"`
	AppointmentType     AppointmentType   `json:"appointmentType" bson:"appointmentType"`
	PaymentStatus       bool              `json:"paymentStatus" bson:"paymentStatus"`
	IsEmergency         bool              `json:"isEmergency" bson:"isEmergency"`
}
