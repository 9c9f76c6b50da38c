package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"healdoctor-service/internal/pkg/utils"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	reportUsecaseInstance contracts.ReportUsecase
	onceReportUsecase     sync.Once
)

type reportUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	Storage               contracts.Storage
	MailerService         contracts.MailerService
	Dispatcher            contracts.Dispatcher
	Log                   *zap.Logger
	InternalConfig        *config.InternalConfig
	BucketName            string
	Location              *time.Location
}

func NewReportUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	storageService contracts.Storage,
	mailerService contracts.MailerService,
	dispatcherService contracts.Dispatcher,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	bucketName string,
) contracts.ReportUsecase {
	onceReportUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &reportUsecase{
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			Storage:               storageService,
			MailerService:         mailerService,
			Dispatcher:            dispatcherService,
			Log:                   logger,
			InternalConfig:        internalConfig,
			BucketName:            bucketName,
			Location:              location,
		}
		reportUsecaseInstance = instance
	})
	return reportUsecaseInstance
}

// Generate exports the doctor's appointments in the requested date range as a
// CSV object and returns a presigned download link.
func (uc *reportUsecase) Generate(ctx context.Context, identity *models.Identity, request *requests.GenerateReport) (*responses.Report, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.Generate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, identity.DoctorID),
	)

	from, _, err := utils.DayWindowFromString(request.FromDate, uc.Location)
	if err != nil {
		return nil, err
	}
	_, to, err := utils.DayWindowFromString(request.ToDate, uc.Location)
	if err != nil {
		return nil, err
	}

	report, err := uc.buildAndStore(ctx, identity.DoctorID, from, to)
	if err != nil {
		uc.Log.Error("reportUsecase.Generate error building report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("reportUsecase.Generate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, report.ObjectName),
	)
	return report, nil
}

// RunDailyReports builds yesterday's report for every doctor and emails each a
// download link. A failure for one doctor does not stop the rest.
func (uc *reportUsecase) RunDailyReports(ctx context.Context) error {
	uc.Log.Info("reportUsecase.RunDailyReports called")

	doctorList, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		return err
	}

	from, to := utils.DayWindow(time.Now().In(uc.Location), uc.Location)
	for i := range doctorList {
		doctor := doctorList[i]

		count, err := uc.AppointmentRepository.CountByDoctorIDWithinWindow(ctx, doctor.DoctorID, from, to)
		if err != nil {
			uc.Log.Error("reportUsecase.RunDailyReports error counting appointments",
				zap.String(constvars.LoggingDoctorIDKey, doctor.DoctorID),
				zap.Error(err),
			)
			continue
		}
		// nothing booked, nothing to build or upload
		if count == 0 {
			continue
		}

		report, err := uc.buildAndStore(ctx, doctor.DoctorID, from, to)
		if err != nil {
			uc.Log.Error("reportUsecase.RunDailyReports error building report",
				zap.String(constvars.LoggingDoctorIDKey, doctor.DoctorID),
				zap.Error(err),
			)
			continue
		}
		if report.RowCount == 0 {
			continue
		}

		payload := &requests.EmailPayload{
			To:       doctor.Email,
			Subject:  constvars.EmailSubjectDailyReport,
			Template: constvars.EmailTemplateGeneric,
			Variables: map[string]string{
				"Name":     doctor.Name,
				"Message":  fmt.Sprintf("Your appointment report for %s is ready (%d appointments).", from.Format(constvars.DayFormat), report.RowCount),
				"Link":     report.DownloadLink,
				"LinkText": "Download report",
			},
		}
		uc.Dispatcher.Submit("report.send_daily_email",
			func(taskCtx context.Context) error {
				return uc.MailerService.Enqueue(taskCtx, payload)
			},
			func(err error) {
				uc.Log.Error("reportUsecase.RunDailyReports failed to enqueue email",
					zap.String(constvars.LoggingDoctorIDKey, doctor.DoctorID),
					zap.Error(err),
				)
			},
		)
	}
	return nil
}

func (uc *reportUsecase) buildAndStore(ctx context.Context, doctorID string, from, to time.Time) (*responses.Report, error) {
	appointments, err := uc.AppointmentRepository.FindByDoctorIDWithinWindow(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}

	content, err := renderCSV(appointments)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("reports/%s/%s_%s.csv", doctorID, from.Format(constvars.DayFormat), to.Format(constvars.DayFormat))
	err = uc.Storage.UploadObject(ctx, uc.BucketName, objectName, bytes.NewReader(content), int64(len(content)), constvars.MIMETextCSV)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.App.ReportLinkExpiryTimeInHours) * time.Hour
	link, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.BucketName, objectName, expiry)
	if err != nil {
		return nil, err
	}

	return &responses.Report{
		ObjectName:   objectName,
		DownloadLink: link,
		RowCount:     len(appointments),
	}, nil
}

func renderCSV(appointments []models.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"appointmentId", "patientName", "contact", "status", "paymentStatus", "treated", "availableAtClinic", "isEmergency", "appointmentDateTime"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for i := range appointments {
		a := &appointments[i]
		row := []string{
			a.AppointmentID,
			a.PatientName,
			a.Contact,
			string(a.Status),
			strconv.FormatBool(a.PaymentStatus),
			strconv.FormatBool(a.Treated),
			strconv.FormatBool(a.AvailableAtClinic),
			strconv.FormatBool(a.IsEmergency),
			a.AppointmentDateTime.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
