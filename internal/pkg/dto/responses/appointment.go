package responses

import "time"

type Appointment struct {
	AppointmentID       string     `json:"appointmentId"`
	DoctorID            string     `json:"doctorId"`
	PatientName         string     `json:"patientName"`
	Contact             string     `json:"contact"`
	Email               string     `json:"email,omitempty"`
	Description         string     `json:"description,omitempty"`
	Status              string     `json:"status"`
	AppointmentType     string     `json:"appointmentType"`
	PaymentStatus       bool       `json:"paymentStatus"`
	Treated             bool       `json:"treated"`
	AvailableAtClinic   bool       `json:"availableAtClinic"`
	IsEmergency         bool       `json:"isEmergency"`
	AppointmentDateTime time.Time  `json:"appointmentDateTime"`
	BookingDateTime     time.Time  `json:"bookingDateTime"`
	TreatedDateTime     *time.Time `json:"treatedDateTime,omitempty"`
}
