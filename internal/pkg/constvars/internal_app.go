package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_DOCTOR_ID_KEY            ContextKey = "doctor_id"
	CONTEXT_DOCTOR_EMAIL_KEY         ContextKey = "doctor_email"
)

const (
	ResourceAppointments  = "appointments"
	ResourceNotifications = "notifications"
	ResourceDoctors       = "doctors"
	ResourceOTP           = "otp"
	ResourceReports       = "reports"
)

const (
	// RealtimeChannelFormat is the per-doctor pub/sub channel; consumers
	// subscribe to exactly one doctor's channel.
	RealtimeChannelFormat = "appointments.%s"

	// BookingLockKeyFormat scopes the duplicate-booking critical section to
	// (doctor, patient, contact, day).
	BookingLockKeyFormat = "booking:lock:%s:%s:%s:%s"
)

const (
	DoctorIDPrefix = "DOC-"

	AppointmentIDDateFormat = "20060102-150405"
	DayFormat               = "2006-01-02"
)

const (
	JWTClaimDoctorID = "doctor_id"
	JWTClaimEmail    = "email"
)
