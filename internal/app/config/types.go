package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		SMTP     SMTP
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	SMTP struct {
		Host        string
		Username    string
		Password    string
		EmailSender string
		Port        int
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
)

type (
	InternalConfig struct {
		App App
		JWT JWT
		OTP OTP
	}
	App struct {
		Env                           string
		Port                          string
		Version                       string
		Address                       string
		Timezone                      string
		EndpointPrefix                string
		MailerEmailSender             string
		RabbitMQMailerQueue           string
		MaxRequests                   int
		ShutdownTimeout               int
		MaxTimeRequestsPerSeconds     int
		RequestBodyLimitInMegabyte    int
		DispatcherWorkers             int
		DispatcherQueueSize           int
		DispatcherTaskTimeoutInSecond int
		BookingLockTTLInSecond        int
		NotificationRetentionInDays   int
		NotificationReaperCronSpec    string
		DailyReportCronSpec           string
		ReportLinkExpiryTimeInHours   int
	}
	JWT struct {
		Secret        string
		ExpTimeInHour int
	}
	OTP struct {
		Length              int
		ExpTimeInMinute     int
		IssuePerMinuteLimit int
		IssueBurst          int
	}
)
