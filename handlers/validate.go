package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/upb/courses-api/utils"
	"go.uber.org/zap"
)

type bodyKey[T any] struct{}

// ValidateBody decodes the JSON body into T and validates it before the rest
// of the chain runs. An empty body is validated as an empty object, and a
// field holding the wrong JSON type is reported like a failed rule.
// The decoded value is available to handlers through bodyFromContext.
func ValidateBody[T any](logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := new(T)

			var (
				invalidFields []string
				typeErr       *json.UnmarshalTypeError
				maxErr        *http.MaxBytesError
			)
			switch err := utils.DecodeJSON(w, r, body); {
			case err == nil, errors.Is(err, io.EOF):
			case errors.As(err, &typeErr) && typeErr.Field != "":
				invalidFields = append(invalidFields, typeErr.Field)
			case errors.As(err, &maxErr):
				logger.Debug("request body too large", zap.Int64("limit", maxErr.Limit))
				_ = utils.WriteJSON(w, http.StatusRequestEntityTooLarge, utils.ErrorResponse{Message: "Request body too large"})
				return
			default:
				logger.Debug("invalid request body", zap.Error(err))
				_ = utils.WriteBadRequest(w, "Invalid request body", nil)
				return
			}

			if err := utils.ValidateStruct(body, invalidFields...); err != nil {
				HandleValidationError(w, err, logger)
				return
			}

			ctx := context.WithValue(r.Context(), bodyKey[T]{}, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bodyFromContext[T any](ctx context.Context) (*T, bool) {
	body, ok := ctx.Value(bodyKey[T]{}).(*T)
	return body, ok
}
