package constvars

const (
	ResponseUnknown = "unknown"

	AppointmentBookedSuccess    = "appointment booked successfully"
	AppointmentFetchedSuccess   = "appointments fetched successfully"
	AppointmentUpdatedSuccess   = "appointment updated successfully"
	AppointmentCancelledSuccess = "appointment cancelled successfully"

	OTPIssuedSuccess    = "otp sent to the provided identifier"
	OTPValidatedSuccess = "otp validated successfully"

	NotificationCreatedSuccess     = "notification created successfully"
	NotificationFetchedSuccess     = "notifications fetched successfully"
	NotificationMarkReadSuccess    = "notification marked as read"
	NotificationMarkAllReadSuccess = "notifications marked as read"

	DoctorRegisteredSuccess     = "doctor registered successfully"
	DoctorProfileFetchedSuccess = "profile fetched successfully"
	LoginSuccess                = "successfully login"
	PasswordChangedSuccess      = "password changed successfully"
	EmailUpdatedSuccess         = "email updated successfully"
	PasswordResetSuccess        = "password already reset successfully"

	ReportGeneratedSuccess = "report generated successfully"
)
