package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"len":      "must be %s characters long",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"contact":  "must be exactly 10 digits",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process the request"
	ErrClientSomethingWrongWithApplication = "something wrong with the application"
	ErrClientNotAuthorized                 = "you are not authorized"
	ErrClientNotLoggedIn                   = "you are not logged in"
	ErrClientInvalidUsernameOrPassword     = "invalid username or password"
	ErrClientEmailAlreadyExists            = "email already used"

	ErrClientAppointmentNotFound      = "appointment not found"
	ErrClientAppointmentNotOwned      = "you are not authorized to access this appointment"
	ErrClientAppointmentAlreadyBooked = "an appointment for this patient already exists today"
	ErrClientBookingInProgress        = "a booking for this patient is already in progress"
	ErrClientPaymentNotAccepted       = "cannot mark as paid: appointment is not marked as accepted"
	ErrClientTreatedPaymentPending    = "cannot mark as treated: payment is pending"
	ErrClientTreatedNotAtClinic       = "cannot mark as treated: patient is not available at the clinic"
	ErrClientTreatedNotAccepted       = "cannot mark as treated: appointment is not marked as accepted"
	ErrClientAvailabilityTreated      = "cannot update availability: patient is already treated"
	ErrClientAvailabilityNotAccepted  = "cannot mark as available: appointment is not marked as accepted"
	ErrClientCancelAlreadyTreated     = "cannot cancel: patient is already treated"
	ErrClientCancelPaymentReceived    = "cannot cancel: payment is already received"

	ErrClientOTPNotFound        = "otp either expired or not available"
	ErrClientOTPExpired         = "otp has expired"
	ErrClientOTPInvalid         = "invalid otp"
	ErrClientTooManyOTPRequests = "too many otp requests, try again later"

	ErrClientNotificationNotFound = "notification not found"
	ErrClientDoctorNotFound       = "doctor not found"
)

// Error messages for developers
const (
	ErrDevValidationFailed   = "request validation failed"
	ErrDevCannotParseJSON    = "cannot parse json body"
	ErrDevCannotParseDate    = "cannot parse date, expected yyyy-mm-dd"
	ErrDevMissingRequestID   = "request id missing from context"
	ErrDevMissingIdentity    = "caller identity missing from context"
	ErrDevAuthTokenMissing   = "authorization token missing"
	ErrDevAuthTokenInvalid   = "authorization token invalid or expired"
	ErrDevAuthSigningMethod  = "unexpected jwt signing method"
	ErrDevInvalidCredentials = "credentials do not match any doctor"
	ErrDevFailedHashPassword = "failed to hash password"

	ErrDevAppointmentNotFound   = "appointment document not found"
	ErrDevAppointmentOwnership  = "appointment doctorId does not match caller"
	ErrDevDuplicateBooking      = "active appointment exists for (doctor, patient, contact) within day window"
	ErrDevBookingLockNotAcquire = "booking lock not acquired, concurrent booking in flight"
	ErrDevBusinessRule          = "business precondition not met"

	ErrDevOTPNotFound    = "no otp record for identifier"
	ErrDevOTPExpired     = "otp past expiration time"
	ErrDevOTPMismatch    = "submitted otp does not match stored code"
	ErrDevOTPRateLimited = "otp issuance rate limit exceeded for identifier"

	ErrDevNotificationNotFound = "notification document not found for doctor"
	ErrDevDoctorNotFound       = "doctor document not found"
	ErrDevEmailAlreadyExists   = "doctor with this email already exists"

	ErrDevDBFailedToFindDocument   = "database failed to find document"
	ErrDevDBFailedToInsertDocument = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument = "database failed to update document"
	ErrDevDBFailedToDeleteDocument = "database failed to delete document"
	ErrDevDBFailedToIterateCursor  = "database failed to iterate cursor"

	ErrDevRedisSet     = "redis failed to set key"
	ErrDevRedisGet     = "redis failed to get key"
	ErrDevRedisDelete  = "redis failed to delete key"
	ErrDevRedisPublish = "redis failed to publish message"
	ErrDevRedisUnlock  = "redis failed to release lock"

	ErrDevRabbitMQPublish = "rabbitmq failed to publish to queue %s"
	ErrDevSMTPSend        = "smtp failed to send email via %s"
	ErrDevMinioPutObject  = "minio failed to store object in bucket %s"
	ErrDevMinioPresign    = "minio failed to presign object in bucket %s"

	ErrDevCannotMarshalJSON   = "cannot marshal value to json"
	ErrDevTemplateRender      = "cannot render email template"
	ErrDevDispatcherQueueFull = "dispatcher queue full, task dropped"

	ErrDevServerDeadlineExceeded = "server took too long to respond"
)
