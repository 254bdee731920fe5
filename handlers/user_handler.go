package handlers

import (
	"context"
	"net/http"

	"github.com/upb/courses-api/middleware"
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/services"
	"github.com/upb/courses-api/utils"
	"go.uber.org/zap"
)

// UserService defines the user operations the handler needs
type UserService interface {
	// SignUp hashes the password and stores a new user
	SignUp(ctx context.Context, input services.SignUpInput) (*models.User, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users  UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleGetCurrentUser handles GET /api/users
func (h *UserHandler) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		HandleServiceError(w, services.ErrAccessDenied, h.logger)
		return
	}

	_ = utils.WriteOK(w, toUserResponse(user))
}

// HandleSignUp handles POST /api/users. Must run behind ValidateBody[SignUpRequest].
func (h *UserHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := bodyFromContext[SignUpRequest](r.Context())
	if !ok {
		HandleServiceError(w, services.WrapInternal("sign up request not decoded", nil), h.logger)
		return
	}

	if _, err := h.users.SignUp(r.Context(), req.toInput()); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteCreated(w, "/")
}
