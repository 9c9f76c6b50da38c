package responses

import "time"

type Doctor struct {
	DoctorID  string    `json:"doctorId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Login struct {
	Token  string `json:"token"`
	Doctor Doctor `json:"doctor"`
}
