package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	t.Run("Length And Digits", func(t *testing.T) {
		otp, err := GenerateOTP(6)

		require.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9', "otp should contain digits only")
		}
	})

	t.Run("Custom Length", func(t *testing.T) {
		otp, err := GenerateOTP(4)

		require.NoError(t, err)
		assert.Len(t, otp, 4)
	})
}

func TestGenerateAppointmentID(t *testing.T) {
	doctorID := "DOC-20250314-1234"

	t.Run("Five Dash Parts", func(t *testing.T) {
		appointmentID, err := GenerateAppointmentID(doctorID)

		require.NoError(t, err)
		parts := strings.Split(appointmentID, "-")
		assert.Len(t, parts, 5, "identifier should split into five parts")
	})

	t.Run("Starts With Doctor Suffix", func(t *testing.T) {
		appointmentID, err := GenerateAppointmentID(doctorID)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(appointmentID, "20250314-1234-"), "doctor suffix should lead the identifier")
	})

	t.Run("Random Suffix In Range", func(t *testing.T) {
		appointmentID, err := GenerateAppointmentID(doctorID)

		require.NoError(t, err)
		parts := strings.Split(appointmentID, "-")
		suffix := parts[4]
		assert.Len(t, suffix, 3)
		assert.True(t, suffix[0] >= '1' && suffix[0] <= '9', "suffix should be between 100 and 999")
	})
}

func TestDecomposeAppointmentID(t *testing.T) {
	t.Run("Roundtrip", func(t *testing.T) {
		appointmentID, err := GenerateAppointmentID("DOC-20250314-1234")
		require.NoError(t, err)

		doctorID, timestamp, err := DecomposeAppointmentID(appointmentID)

		require.NoError(t, err)
		assert.Equal(t, "DOC-20250314-1234", doctorID)
		_, parseErr := time.Parse("20060102 150405", timestamp)
		assert.NoError(t, parseErr, "embedded timestamp should parse back")
	})

	t.Run("Malformed Identifier", func(t *testing.T) {
		_, _, err := DecomposeAppointmentID("not-an-id")

		assert.Error(t, err)
	})
}

func TestGenerateDoctorID(t *testing.T) {
	doctorID, err := GenerateDoctorID()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doctorID, "DOC-"))
	parts := strings.Split(doctorID, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[1], 8, "middle part should be the yyyyMMdd date")
	assert.Len(t, parts[2], 4, "trailing part should be a four digit number")
}

func TestSessionJWT(t *testing.T) {
	secret := "test-secret"

	t.Run("Roundtrip", func(t *testing.T) {
		token, err := GenerateSessionJWT("DOC-20250314-1234", "doc@clinic.test", secret, 1)
		require.NoError(t, err)

		doctorID, email, err := ParseSessionJWT(token, secret)

		require.NoError(t, err)
		assert.Equal(t, "DOC-20250314-1234", doctorID)
		assert.Equal(t, "doc@clinic.test", email)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateSessionJWT("DOC-20250314-1234", "doc@clinic.test", secret, 1)
		require.NoError(t, err)

		_, _, err = ParseSessionJWT(token, "another-secret")

		assert.Error(t, err, "token signed with a different secret should be rejected")
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, _, err := ParseSessionJWT("not.a.token", secret)

		assert.Error(t, err)
	})
}
