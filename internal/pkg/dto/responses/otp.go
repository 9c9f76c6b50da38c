package responses

import "time"

type OTPIssued struct {
	Identifier     string    `json:"identifier"`
	ExpirationTime time.Time `json:"expirationTime"`
}
