package main

import (
	"context"
	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/delivery/http/controllers"
	"healdoctor-service/internal/app/delivery/http/middlewares"
	"healdoctor-service/internal/app/delivery/http/routers"
	"healdoctor-service/internal/app/drivers/database"
	"healdoctor-service/internal/app/drivers/logger"
	mailerdriver "healdoctor-service/internal/app/drivers/mailer"
	"healdoctor-service/internal/app/drivers/messaging"
	storagedriver "healdoctor-service/internal/app/drivers/storage"
	"healdoctor-service/internal/app/services/core/appointments"
	"healdoctor-service/internal/app/services/core/doctors"
	"healdoctor-service/internal/app/services/core/notifications"
	"healdoctor-service/internal/app/services/core/otp"
	"healdoctor-service/internal/app/services/core/reports"
	"healdoctor-service/internal/app/services/shared/dispatcher"
	"healdoctor-service/internal/app/services/shared/locker"
	mailersvc "healdoctor-service/internal/app/services/shared/mailer"
	"healdoctor-service/internal/app/services/shared/realtime"
	redissvc "healdoctor-service/internal/app/services/shared/redis"
	"healdoctor-service/internal/app/services/shared/scheduler"
	"healdoctor-service/internal/app/services/shared/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	logrusLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storagedriver.NewMinio(driverConfig)
	smtpClient := mailerdriver.NewSMTPClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	// Shared services
	redisRepository := redissvc.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	realtimePublisher := realtime.NewRealtimePublisher(redisRepository, zapLogger)
	storageService := storage.NewMinioStorage(minioClient)

	dispatcherService := dispatcher.NewDispatcher(
		zapLogger,
		internalConfig.App.DispatcherWorkers,
		internalConfig.App.DispatcherQueueSize,
		time.Duration(internalConfig.App.DispatcherTaskTimeoutInSecond)*time.Second,
	)
	bootstrap.DispatcherStop = dispatcherService.Shutdown

	mailerService, err := mailersvc.NewMailerService(rabbitMQConnection, internalConfig.App.RabbitMQMailerQueue)
	if err != nil {
		log.Fatalf("Failed to initialize mailer service: %v", err)
	}

	smtpSender, err := mailersvc.NewSMTPSender(smtpClient)
	if err != nil {
		log.Fatalf("Failed to parse email templates: %v", err)
	}
	mailerWorker, err := mailersvc.NewWorker(zapLogger, rabbitMQConnection, smtpSender, internalConfig.App.RabbitMQMailerQueue)
	if err != nil {
		log.Fatalf("Failed to initialize mailer worker: %v", err)
	}
	mailerStop, err := mailerWorker.Start(context.Background())
	if err != nil {
		log.Fatalf("Failed to start mailer worker: %v", err)
	}
	bootstrap.MailerStop = mailerStop

	// Repositories
	dbName := driverConfig.MongoDB.DbName
	otpRepository := otp.NewOTPMongoRepository(mongoClient, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(mongoClient, dbName)
	notificationRepository := notifications.NewNotificationMongoRepository(mongoClient, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(mongoClient, dbName)

	indexCtx, cancelIndexCtx := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexCtx()
	if repo, ok := appointmentRepository.(*appointments.AppointmentMongoRepository); ok {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Fatalf("Failed to ensure appointment indexes: %v", err)
		}
	}
	if repo, ok := doctorRepository.(*doctors.DoctorMongoRepository); ok {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Fatalf("Failed to ensure doctor indexes: %v", err)
		}
	}
	if repo, ok := otpRepository.(*otp.OTPMongoRepository); ok {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Fatalf("Failed to ensure otp indexes: %v", err)
		}
	}
	if repo, ok := notificationRepository.(*notifications.NotificationMongoRepository); ok {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Fatalf("Failed to ensure notification indexes: %v", err)
		}
	}

	// Usecases
	otpUsecase := otp.NewOTPUsecase(otpRepository, mailerService, dispatcherService, zapLogger, internalConfig)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, realtimePublisher, zapLogger, internalConfig)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		notificationUsecase,
		realtimePublisher,
		lockerService,
		dispatcherService,
		mailerService,
		zapLogger,
		internalConfig,
	)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, otpUsecase, notificationUsecase, mailerService, dispatcherService, zapLogger, internalConfig)
	reportUsecase := reports.NewReportUsecase(
		appointmentRepository,
		doctorRepository,
		storageService,
		mailerService,
		dispatcherService,
		zapLogger,
		internalConfig,
		driverConfig.Minio.BucketName,
	)

	// Cron jobs
	appScheduler := scheduler.NewScheduler(zapLogger, internalConfig, notificationUsecase, reportUsecase)
	cronStop, err := appScheduler.Start()
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	bootstrap.CronStop = cronStop

	// Delivery
	appMiddlewares := middlewares.NewMiddlewares(zapLogger, internalConfig)
	appointmentController := controllers.NewAppointmentController(zapLogger, appointmentUsecase)
	otpController := controllers.NewOTPController(zapLogger, otpUsecase)
	doctorController := controllers.NewDoctorController(zapLogger, doctorUsecase)
	notificationController := controllers.NewNotificationController(zapLogger, notificationUsecase)
	reportController := controllers.NewReportController(zapLogger, reportUsecase)

	routers.SetupRoutes(
		chiRouter,
		internalConfig,
		appMiddlewares,
		appointmentController,
		otpController,
		doctorController,
		notificationController,
		reportController,
	)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		logrusLogger.Infof("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrusLogger.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to shutdown cleanly: %v", err)
	}

	log.Println("Server exiting")
}
