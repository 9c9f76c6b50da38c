package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingNotificationIDKey = "notification_id"
	LoggingIdentifierKey     = "identifier"
	LoggingChannelKey        = "channel"
	LoggingTaskNameKey       = "task_name"
	LoggingEmailToKey        = "email_to"
	LoggingRedisKey          = "redis_key"
	LoggingObjectNameKey     = "object_name"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
)
