package responses

const (
	RealtimeEventAppointment  = "APPOINTMENT"
	RealtimeEventNotification = "NOTIFICATION"
)

// RealtimeEnvelope is the message published to a doctor's realtime channel.
type RealtimeEnvelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
