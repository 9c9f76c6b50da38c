package middlewares

import (
	"context"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"healdoctor-service/internal/pkg/utils"
	"net/http"
	"strings"
)

// Authenticate verifies the Bearer token and stores the caller's doctor id
// and email in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		doctorID, email, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_DOCTOR_ID_KEY, doctorID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_DOCTOR_EMAIL_KEY, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
