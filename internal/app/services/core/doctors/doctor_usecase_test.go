package doctors

import (
	"context"
	"strings"
	"testing"
	"time"

	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/dto/responses"
	"healdoctor-service/internal/pkg/exceptions"
	"healdoctor-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type MockOTPUsecase struct {
	mock.Mock
}

func (m *MockOTPUsecase) Issue(ctx context.Context, request *requests.IssueOTP) (*responses.OTPIssued, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.OTPIssued), args.Error(1)
}

func (m *MockOTPUsecase) Validate(ctx context.Context, request *requests.ValidateOTP) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockNotificationUsecase struct {
	mock.Mock
}

func (m *MockNotificationUsecase) Create(ctx context.Context, doctorID string, request *requests.CreateNotification) (*responses.Notification, error) {
	args := m.Called(ctx, doctorID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Notification), args.Error(1)
}

func (m *MockNotificationUsecase) FindAllForDoctor(ctx context.Context, identity *models.Identity) ([]responses.Notification, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.Notification), args.Error(1)
}

func (m *MockNotificationUsecase) FindUnreadForDoctor(ctx context.Context, identity *models.Identity) ([]responses.Notification, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.Notification), args.Error(1)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, identity *models.Identity, notificationID string) error {
	args := m.Called(ctx, identity, notificationID)
	return args.Error(0)
}

func (m *MockNotificationUsecase) MarkAllRead(ctx context.Context, identity *models.Identity) (int64, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUsecase) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
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

type doctorFixture struct {
	repo          *MockDoctorRepository
	otp           *MockOTPUsecase
	notifications *MockNotificationUsecase
	mailer        *MockMailerService
	uc            *doctorUsecase
}

func newDoctorFixture() *doctorFixture {
	f := &doctorFixture{
		repo:          new(MockDoctorRepository),
		otp:           new(MockOTPUsecase),
		notifications: new(MockNotificationUsecase),
		mailer:        new(MockMailerService),
	}
	f.uc = &doctorUsecase{
		DoctorRepository:    f.repo,
		OTPUsecase:          f.otp,
		NotificationUsecase: f.notifications,
		MailerService:       f.mailer,
		Dispatcher:          inlineDispatcher{},
		Log:                 zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{
				Secret:        "test-secret",
				ExpTimeInHour: 1,
			},
		},
	}
	return f
}

var testIdentity = &models.Identity{DoctorID: "DOC-20250314-1234", Email: "doc@clinic.test"}

func storedDoctor(t *testing.T, password string) *models.Doctor {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &models.Doctor{
		DoctorID: testIdentity.DoctorID,
		Name:     "Dr. Jane Roe",
		Email:    testIdentity.Email,
		Password: hashed,
	}
}

func TestDoctorUsecase_Register(t *testing.T) {
	registerRequest := &requests.RegisterDoctor{
		Name:     "Dr. Jane Roe",
		Email:    "doc@clinic.test",
		Password: "s3cretPass!",
		OTP:      "123456",
	}

	t.Run("Creates Account After OTP", func(t *testing.T) {
		f := newDoctorFixture()

		f.otp.On("Validate", mock.Anything, mock.MatchedBy(func(request *requests.ValidateOTP) bool {
			return request.Identifier == "doc@clinic.test" && request.Code == "123456"
		})).Return(nil)
		f.repo.On("FindByEmail", mock.Anything, "doc@clinic.test").Return(nil, nil)
		var inserted *models.Doctor
		f.repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Doctor")).Run(func(args mock.Arguments) {
			inserted = args.Get(1).(*models.Doctor)
		}).Return(nil)
		f.mailer.On("Enqueue", mock.Anything, mock.AnythingOfType("*requests.EmailPayload")).Return(nil)
		f.notifications.On("Create", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(request *requests.CreateNotification) bool {
			return request.Type == "SYSTEM"
		})).Return(&responses.Notification{}, nil)

		response, err := f.uc.Register(context.Background(), registerRequest)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(response.DoctorID, "DOC-"))
		f.notifications.AssertExpectations(t)
		require.NotNil(t, inserted)
		assert.NotEqual(t, "s3cretPass!", inserted.Password, "password must be stored hashed")
		assert.NoError(t, utils.ComparePassword(inserted.Password, "s3cretPass!"))
		f.otp.AssertExpectations(t)
	})

	t.Run("Rejects Without Valid OTP", func(t *testing.T) {
		f := newDoctorFixture()

		otpErr := exceptions.ErrOTPMismatch(nil)
		f.otp.On("Validate", mock.Anything, mock.Anything).Return(otpErr)

		_, err := f.uc.Register(context.Background(), registerRequest)

		assert.Equal(t, otpErr, err)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Rejects Duplicate Email", func(t *testing.T) {
		f := newDoctorFixture()

		f.otp.On("Validate", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByEmail", mock.Anything, "doc@clinic.test").Return(storedDoctor(t, "whatever"), nil)

		_, err := f.uc.Register(context.Background(), registerRequest)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestDoctorUsecase_Login(t *testing.T) {
	t.Run("Returns Session Token", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByEmail", mock.Anything, "doc@clinic.test").Return(storedDoctor(t, "s3cretPass!"), nil)

		response, err := f.uc.Login(context.Background(), &requests.LoginDoctor{Email: "doc@clinic.test", Password: "s3cretPass!"})

		require.NoError(t, err)
		require.NotEmpty(t, response.Token)
		doctorID, email, err := utils.ParseSessionJWT(response.Token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, testIdentity.DoctorID, doctorID)
		assert.Equal(t, "doc@clinic.test", email)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByEmail", mock.Anything, "doc@clinic.test").Return(storedDoctor(t, "s3cretPass!"), nil)

		_, err := f.uc.Login(context.Background(), &requests.LoginDoctor{Email: "doc@clinic.test", Password: "wrong"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 401, customErr.StatusCode)
	})

	t.Run("Unknown Email Reads As Bad Credentials", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByEmail", mock.Anything, "nobody@clinic.test").Return(nil, nil)

		_, err := f.uc.Login(context.Background(), &requests.LoginDoctor{Email: "nobody@clinic.test", Password: "s3cretPass!"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 401, customErr.StatusCode, "missing accounts must not be distinguishable")
	})
}

func TestDoctorUsecase_ChangePassword(t *testing.T) {
	t.Run("Requires Matching Old Password", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByDoctorID", mock.Anything, testIdentity.DoctorID).Return(storedDoctor(t, "oldPass"), nil)

		err := f.uc.ChangePassword(context.Background(), testIdentity, &requests.ChangePassword{
			OldPassword: "wrong",
			NewPassword: "newPass123",
		})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 401, customErr.StatusCode)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Stores New Hash", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByDoctorID", mock.Anything, testIdentity.DoctorID).Return(storedDoctor(t, "oldPass"), nil)
		var updated *models.Doctor
		f.repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Doctor")).Run(func(args mock.Arguments) {
			updated = args.Get(1).(*models.Doctor)
		}).Return(nil)
		f.mailer.On("Enqueue", mock.Anything, mock.AnythingOfType("*requests.EmailPayload")).Return(nil)
		f.notifications.On("Create", mock.Anything, testIdentity.DoctorID, mock.MatchedBy(func(request *requests.CreateNotification) bool {
			return request.Type == "INFO"
		})).Return(&responses.Notification{}, nil)

		err := f.uc.ChangePassword(context.Background(), testIdentity, &requests.ChangePassword{
			OldPassword: "oldPass",
			NewPassword: "newPass123",
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.NoError(t, utils.ComparePassword(updated.Password, "newPass123"))
	})
}

func TestDoctorUsecase_UpdateEmail(t *testing.T) {
	t.Run("OTP Is Checked Against The New Address", func(t *testing.T) {
		f := newDoctorFixture()

		f.otp.On("Validate", mock.Anything, mock.MatchedBy(func(request *requests.ValidateOTP) bool {
			return request.Identifier == "new@clinic.test"
		})).Return(nil)
		f.repo.On("FindByEmail", mock.Anything, "new@clinic.test").Return(nil, nil)
		f.repo.On("FindByDoctorID", mock.Anything, testIdentity.DoctorID).Return(storedDoctor(t, "s3cretPass!"), nil)
		f.repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Doctor")).Return(nil)
		f.mailer.On("Enqueue", mock.Anything, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
			// the heads-up goes to the address being replaced
			return payload.To == "doc@clinic.test"
		})).Return(nil)
		f.notifications.On("Create", mock.Anything, testIdentity.DoctorID, mock.AnythingOfType("*requests.CreateNotification")).Return(&responses.Notification{}, nil)

		response, err := f.uc.UpdateEmail(context.Background(), testIdentity, &requests.UpdateEmail{
			NewEmail: "new@clinic.test",
			OTP:      "123456",
		})

		require.NoError(t, err)
		assert.Equal(t, "new@clinic.test", response.Email)
		f.otp.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})

	t.Run("New Address Already Taken", func(t *testing.T) {
		f := newDoctorFixture()

		other := storedDoctor(t, "s3cretPass!")
		other.DoctorID = "DOC-20250314-9999"
		f.otp.On("Validate", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByEmail", mock.Anything, "new@clinic.test").Return(other, nil)

		_, err := f.uc.UpdateEmail(context.Background(), testIdentity, &requests.UpdateEmail{
			NewEmail: "new@clinic.test",
			OTP:      "123456",
		})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})
}

func TestDoctorUsecase_Profile(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByDoctorID", mock.Anything, testIdentity.DoctorID).Return(storedDoctor(t, "s3cretPass!"), nil)

		response, err := f.uc.Profile(context.Background(), testIdentity)

		require.NoError(t, err)
		assert.Equal(t, testIdentity.DoctorID, response.DoctorID)
	})

	t.Run("Missing", func(t *testing.T) {
		f := newDoctorFixture()

		f.repo.On("FindByDoctorID", mock.Anything, testIdentity.DoctorID).Return(nil, nil)

		_, err := f.uc.Profile(context.Background(), testIdentity)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}
