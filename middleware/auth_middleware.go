package middleware

import (
	"context"
	"net/http"

	"github.com/upb/courses-api/auth"
	"github.com/upb/courses-api/internal/observability"
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/services"
	"github.com/upb/courses-api/utils"
	"go.uber.org/zap"
)

// Authenticator checks an email and password pair.
// On a credential mismatch it returns services.ErrAccessDenied and a reason suitable for logs.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
}

// ReasonMissingHeader is logged when a request carries no usable Basic credentials
const ReasonMissingHeader = "auth header not found"

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	authenticator Authenticator
	logger        *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// RequireAuth is a middleware that requires valid HTTP Basic credentials.
// Every credential failure gets the same 401 body; the reason is only logged.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		creds, ok := auth.CredentialsFromRequest(r)
		if !ok {
			m.deny(w, requestID, "missing_header", ReasonMissingHeader)
			return
		}

		user, reason, err := m.authenticator.Authenticate(ctx, creds.Name, creds.Password)
		if err != nil {
			if services.IsUnauthorizedError(err) {
				m.deny(w, requestID, "bad_credentials", reason)
				return
			}
			m.logger.Error("authentication lookup failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		m.logger.Info("authentication successful",
			zap.String("request_id", requestID),
			zap.Int64("user_id", user.ID))

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
	})
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, requestID, kind, reason string) {
	observability.RecordAuthFailure(kind)
	m.logger.Warn("authentication denied",
		zap.String("request_id", requestID),
		zap.String("reason", reason))
	_ = utils.WriteUnauthorized(w, services.ErrAccessDenied.Message)
}
