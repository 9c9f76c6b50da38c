package config

import (
	"healdoctor-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "healdoctor"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "healdoctor-reports"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                           utils.GetEnvString("APP_ENV", "development"),
			Port:                          utils.GetEnvString("APP_PORT", ":8080"),
			Version:                       utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                       utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                      utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:                utils.GetEnvString("APP_ENDPOINT_PREFIX", "/v1"),
			MailerEmailSender:             utils.GetEnvString("APP_MAILER_EMAIL_SENDER", ""),
			RabbitMQMailerQueue:           utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mailer_queue"),
			MaxRequests:                   utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:               utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:     utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:    utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			DispatcherWorkers:             utils.GetEnvInt("APP_DISPATCHER_WORKERS", 8),
			DispatcherQueueSize:           utils.GetEnvInt("APP_DISPATCHER_QUEUE_SIZE", 256),
			DispatcherTaskTimeoutInSecond: utils.GetEnvInt("APP_DISPATCHER_TASK_TIMEOUT_IN_SECOND", 30),
			BookingLockTTLInSecond:        utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECOND", 10),
			NotificationRetentionInDays:   utils.GetEnvInt("APP_NOTIFICATION_RETENTION_IN_DAYS", 30),
			NotificationReaperCronSpec:    utils.GetEnvString("APP_NOTIFICATION_REAPER_CRON_SPEC", "@hourly"),
			DailyReportCronSpec:           utils.GetEnvString("APP_DAILY_REPORT_CRON_SPEC", "0 21 * * *"),
			ReportLinkExpiryTimeInHours:   utils.GetEnvInt("APP_REPORT_LINK_EXPIRY_TIME_IN_HOURS", 24),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		OTP: OTP{
			Length:              utils.GetEnvInt("OTP_LENGTH", 6),
			ExpTimeInMinute:     utils.GetEnvInt("OTP_EXP_TIME_IN_MINUTE", 5),
			IssuePerMinuteLimit: utils.GetEnvInt("OTP_ISSUE_PER_MINUTE_LIMIT", 3),
			IssueBurst:          utils.GetEnvInt("OTP_ISSUE_BURST", 3),
		},
	}
}
