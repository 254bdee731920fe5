package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/upb/courses-api/middleware"
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/services"
	"github.com/upb/courses-api/utils"
	"go.uber.org/zap"
)

// CourseService defines the course operations the handler needs
type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, owner *models.User, input services.CourseInput) (*models.Course, error)
	Update(ctx context.Context, actor *models.User, id int64, input services.CourseInput) error
	Delete(ctx context.Context, actor *models.User, id int64) error
}

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	courses CourseService
	logger  *zap.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courses CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courses: courses,
		logger:  logger,
	}
}

// HandleListCourses handles GET /api/courses
func (h *CourseHandler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, toCourseResponses(courses))
}

// HandleGetCourse handles GET /api/courses/{id}
func (h *CourseHandler) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		HandleServiceError(w, services.ErrCourseNotFound, h.logger)
		return
	}

	course, err := h.courses.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, toCourseResponse(course))
}

// HandleCreateCourse handles POST /api/courses.
// Must run behind ValidateBody[CourseRequest] and RequireAuth.
func (h *CourseHandler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	req, user, ok := h.requestAndUser(w, r)
	if !ok {
		return
	}

	course, err := h.courses.Create(r.Context(), user, req.toInput())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteCreated(w, fmt.Sprintf("/api/courses/%d", course.ID))
}

// HandleUpdateCourse handles PUT /api/courses/{id}.
// Must run behind ValidateBody[CourseRequest] and RequireAuth.
func (h *CourseHandler) HandleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	req, user, ok := h.requestAndUser(w, r)
	if !ok {
		return
	}

	id, ok := courseID(r)
	if !ok {
		HandleServiceError(w, services.ErrCourseNotFound, h.logger)
		return
	}

	if err := h.courses.Update(r.Context(), user, id, req.toInput()); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

// HandleDeleteCourse handles DELETE /api/courses/{id}. Must run behind RequireAuth.
func (h *CourseHandler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		HandleServiceError(w, services.ErrAccessDenied, h.logger)
		return
	}

	id, ok := courseID(r)
	if !ok {
		HandleServiceError(w, services.ErrCourseNotFound, h.logger)
		return
	}

	if err := h.courses.Delete(r.Context(), user, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

func (h *CourseHandler) requestAndUser(w http.ResponseWriter, r *http.Request) (*CourseRequest, *models.User, bool) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		HandleServiceError(w, services.ErrAccessDenied, h.logger)
		return nil, nil, false
	}

	req, ok := bodyFromContext[CourseRequest](r.Context())
	if !ok {
		HandleServiceError(w, services.WrapInternal("course request not decoded", nil), h.logger)
		return nil, nil, false
	}

	return req, user, true
}

// courseID parses the {id} URL param. Non-numeric ids name no course.
func courseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
