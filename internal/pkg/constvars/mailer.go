package constvars

const (
	EmailSubjectOTP            = "Your one-time verification code"
	EmailSubjectWelcome        = "Welcome aboard"
	EmailSubjectPasswordChange = "Your password was changed"
	EmailSubjectEmailChange    = "Your email address was updated"
	EmailSubjectDailyReport    = "Your appointment report is ready"

	EmailTemplateOTP     = "otp"
	EmailTemplateGeneric = "generic"
)
