package models

import "time"

// OTP is a one-time code bound to an identifier (an email address). Only the
// most recently created record per identifier is live; issuing deletes the
// predecessors and successful validation deletes the record itself.
type OTP struct {
	ID             string    `json:"-" bson:"_id,omitempty"`
	Identifier     string    `json:"identifier" bson:"identifier"`
	Code           string    `json:"-" bson:"code"`
	ExpirationTime time.Time `json:"expirationTime" bson:"expirationTime"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
