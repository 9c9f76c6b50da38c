package models

import "time"

type Doctor struct {
	ID        string    `json:"-" bson:"_id,omitempty"`
	DoctorID  string    `json:"doctorId" bson:"doctorId"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Specialty string    `json:"specialty,omitempty" bson:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
