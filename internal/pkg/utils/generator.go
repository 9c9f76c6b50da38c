package utils

import (
	"crypto/rand"
	"fmt"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateSessionJWT(doctorID, email, secret string, jwtExpiryTimeInHour int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.JWTClaimDoctorID: doctorID,
		constvars.JWTClaimEmail:    email,
		"exp":                      time.Now().Add(time.Duration(jwtExpiryTimeInHour) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateOTP(otpLength int) (string, error) {
	const otpDigits = "0123456789"
	max := big.NewInt(int64(len(otpDigits)))

	otp := make([]byte, otpLength)
	for i := range otp {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		otp[i] = otpDigits[num.Int64()]
	}

	return string(otp), nil
}

// GenerateAppointmentID builds a sortable identifier from the owning doctor,
// the current instant, and a random suffix:
//
//	<doctor suffix>-<yyyyMMdd-HHmmss>-<nnn>
//
// The doctor suffix is the doctor id without its DOC- prefix, so the full
// identifier always splits into five dash-separated parts.
func GenerateAppointmentID(doctorID string) (string, error) {
	doctorSuffix := strings.TrimPrefix(doctorID, constvars.DoctorIDPrefix)
	timestamp := time.Now().Format(constvars.AppointmentIDDateFormat)

	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", err
	}
	randomSuffix := 100 + n.Int64()

	return fmt.Sprintf("%s-%s-%d", doctorSuffix, timestamp, randomSuffix), nil
}

// DecomposeAppointmentID reverses GenerateAppointmentID, returning the owning
// doctor id and the embedded timestamp string "yyyyMMdd HHmmss".
func DecomposeAppointmentID(appointmentID string) (doctorID, timestamp string, err error) {
	parts := strings.Split(appointmentID, "-")
	if len(parts) != 5 {
		return "", "", exceptions.WrapWithoutError(
			constvars.StatusBadRequest,
			constvars.ErrClientCannotProcessRequest,
			fmt.Sprintf("appointment id %q does not have 5 parts", appointmentID),
		)
	}
	doctorID = constvars.DoctorIDPrefix + parts[0] + "-" + parts[1]
	timestamp = parts[2] + " " + parts[3]
	return doctorID, timestamp, nil
}

// GenerateDoctorID produces DOC-<yyyyMMdd>-<nnnn>.
func GenerateDoctorID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s-%d", constvars.DoctorIDPrefix, time.Now().Format("20060102"), 1000+n.Int64()), nil
}

func GenerateRequestID() string {
	return uuid.NewString()
}
