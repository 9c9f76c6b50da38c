package reports

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByAppointmentID(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, doctorID, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAllByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctorIDWithinWindow(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ExistsActiveDuplicate(ctx context.Context, doctorID, patientName, contact string, from, to time.Time) (bool, error) {
	args := m.Called(ctx, doctorID, patientName, contact, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) CountByDoctorIDWithinWindow(ctx context.Context, doctorID string, from, to time.Time) (int64, error) {
	args := m.Called(ctx, doctorID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Insert(ctx context.Context, doctor *models.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
	uploaded []byte
}

func (m *MockStorage) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) error {
	content, _ := io.ReadAll(reader)
	m.uploaded = content
	args := m.Called(ctx, bucketName, objectName, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) Enqueue(ctx context.Context, payload *requests.EmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type inlineDispatcher struct{}

func (inlineDispatcher) Submit(name string, task func(ctx context.Context) error, onFailure func(err error)) error {
	if err := task(context.Background()); err != nil {
		onFailure(err)
		return err
	}
	return nil
}

func (inlineDispatcher) Shutdown(ctx context.Context) error { return nil }

type reportFixture struct {
	appointments *MockAppointmentRepository
	doctors      *MockDoctorRepository
	storage      *MockStorage
	mailer       *MockMailerService
	uc           *reportUsecase
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		appointments: new(MockAppointmentRepository),
		doctors:      new(MockDoctorRepository),
		storage:      new(MockStorage),
		mailer:       new(MockMailerService),
	}
	f.uc = &reportUsecase{
		AppointmentRepository: f.appointments,
		DoctorRepository:      f.doctors,
		Storage:               f.storage,
		MailerService:         f.mailer,
		Dispatcher:            inlineDispatcher{},
		Log:                   zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				ReportLinkExpiryTimeInHours: 24,
			},
		},
		BucketName: "healdoctor-reports",
		Location:   time.UTC,
	}
	return f
}

var testIdentity = &models.Identity{DoctorID: "DOC-20250314-1234", Email: "doc@clinic.test"}

func sampleAppointments() []models.Appointment {
	return []models.Appointment{
		{
			AppointmentID:       "20250314-1234-20250601-101500-123",
			DoctorID:            testIdentity.DoctorID,
			PatientName:         "Jane Roe",
			Contact:             "9876543210",
			Status:              models.AppointmentStatusAccepted,
			AppointmentDateTime: time.Date(2025, 6, 1, 10, 15, 0, 0, time.UTC),
		},
		{
			AppointmentID:       "20250314-1234-20250601-113000-456",
			DoctorID:            testIdentity.DoctorID,
			PatientName:         "John Doe",
			Contact:             "9876500000",
			Status:              models.AppointmentStatusCancelled,
			AppointmentDateTime: time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC),
		},
	}
}

func TestReportUsecase_Generate(t *testing.T) {
	t.Run("Uploads CSV And Returns Link", func(t *testing.T) {
		f := newReportFixture()

		f.appointments.On("FindByDoctorIDWithinWindow", mock.Anything, testIdentity.DoctorID, mock.Anything, mock.Anything).Return(sampleAppointments(), nil)
		f.storage.On("UploadObject", mock.Anything, "healdoctor-reports", "reports/DOC-20250314-1234/2025-06-01_2025-06-02.csv", mock.Anything, "text/csv").Return(nil)
		f.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "healdoctor-reports", mock.Anything, 24*time.Hour).Return("https://storage/signed-url", nil)

		report, err := f.uc.Generate(context.Background(), testIdentity, &requests.GenerateReport{
			FromDate: "2025-06-01",
			ToDate:   "2025-06-02",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, report.RowCount)
		assert.Equal(t, "https://storage/signed-url", report.DownloadLink)
		assert.Equal(t, "reports/DOC-20250314-1234/2025-06-01_2025-06-02.csv", report.ObjectName)

		content := string(f.storage.uploaded)
		lines := strings.Split(strings.TrimSpace(content), "\n")
		require.Len(t, lines, 3, "csv should hold a header plus one row per appointment")
		assert.Contains(t, lines[0], "appointmentId")
		assert.Contains(t, lines[1], "Jane Roe")
		assert.Contains(t, lines[2], "CANCELLED")
	})

	t.Run("Bad Date Range", func(t *testing.T) {
		f := newReportFixture()

		_, err := f.uc.Generate(context.Background(), testIdentity, &requests.GenerateReport{
			FromDate: "01/06/2025",
			ToDate:   "2025-06-02",
		})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		f.storage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReportUsecase_RunDailyReports(t *testing.T) {
	t.Run("Emails Doctors With Appointments", func(t *testing.T) {
		f := newReportFixture()

		f.doctors.On("FindAll", mock.Anything).Return([]models.Doctor{
			{DoctorID: testIdentity.DoctorID, Name: "Dr. Jane Roe", Email: testIdentity.Email},
		}, nil)
		f.appointments.On("CountByDoctorIDWithinWindow", mock.Anything, testIdentity.DoctorID, mock.Anything, mock.Anything).Return(int64(2), nil)
		f.appointments.On("FindByDoctorIDWithinWindow", mock.Anything, testIdentity.DoctorID, mock.Anything, mock.Anything).Return(sampleAppointments(), nil)
		f.storage.On("UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://storage/signed-url", nil)
		f.mailer.On("Enqueue", mock.Anything, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
			return payload.To == testIdentity.Email && payload.Variables["Link"] == "https://storage/signed-url"
		})).Return(nil)

		err := f.uc.RunDailyReports(context.Background())

		require.NoError(t, err)
		f.mailer.AssertExpectations(t)
	})

	t.Run("Skips Doctors With No Appointments", func(t *testing.T) {
		f := newReportFixture()

		f.doctors.On("FindAll", mock.Anything).Return([]models.Doctor{
			{DoctorID: testIdentity.DoctorID, Name: "Dr. Jane Roe", Email: testIdentity.Email},
		}, nil)
		f.appointments.On("CountByDoctorIDWithinWindow", mock.Anything, testIdentity.DoctorID, mock.Anything, mock.Anything).Return(int64(0), nil)

		err := f.uc.RunDailyReports(context.Background())

		require.NoError(t, err)
		f.storage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.mailer.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})
}
