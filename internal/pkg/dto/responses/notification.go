package responses

import "time"

type Notification struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctorId,omitempty"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
