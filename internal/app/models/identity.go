package models

// Identity is the authenticated caller, resolved once by the delivery layer
// and threaded explicitly into every core operation. The core never consults
// a process-wide "current user".
type Identity struct {
	DoctorID string
	Email    string
}
