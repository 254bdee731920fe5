package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/upb/courses-api/utils"
	"go.uber.org/zap"
)

// Recoverer turns panics into a generic 500 response.
// The panic value and stack are logged only when logDetails is set.
func Recoverer(logger *zap.Logger, logDetails bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := GetRequestIDFromContext(r.Context())
				if logDetails {
					logger.Error("unhandled panic",
						zap.String("request_id", requestID),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.String("panic", fmt.Sprint(rec)),
						zap.ByteString("stack", debug.Stack()))
				} else {
					logger.Error("unhandled panic", zap.String("request_id", requestID))
				}

				_ = utils.WriteInternalServerError(w, "An unexpected error occurred")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
