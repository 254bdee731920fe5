package services

import (
	"context"
	"errors"

	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/repositories"
	"go.uber.org/zap"
)

// CourseInput carries the client-editable fields of a course
type CourseInput struct {
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// CourseService handles course reads and owner-only mutations
type CourseService struct {
	courses repositories.CourseRepository
	txMgr   repositories.TransactionManager
	logger  *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courses repositories.CourseRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		txMgr:   txMgr,
		logger:  logger,
	}
}

// List returns every course with its owner
func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list courses", err)
	}
	return courses, nil
}

// Get returns a course with its owner
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, mapCourseError(err, "failed to get course")
	}
	return course, nil
}

// Create stores a new course owned by owner
func (s *CourseService) Create(ctx context.Context, owner *models.User, input CourseInput) (*models.Course, error) {
	if owner == nil {
		return nil, ErrAccessDenied
	}

	course := models.NewCourse(owner.ID, input.Title, input.Description, input.EstimatedTime, input.MaterialsNeeded)
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrOwnerNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to create course", err)
	}

	s.logger.Info("course created",
		zap.Int64("course_id", course.ID),
		zap.Int64("user_id", owner.ID),
	)

	return course, nil
}

// Update replaces the mutable fields of a course owned by actor.
// The read, ownership check and write share one transaction.
func (s *CourseService) Update(ctx context.Context, actor *models.User, id int64, input CourseInput) error {
	return WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		course, err := s.ownedCourse(ctx, actor, id)
		if err != nil {
			return err
		}

		course.ApplyUpdate(input.Title, input.Description, input.EstimatedTime, input.MaterialsNeeded)
		if err := s.courses.Update(ctx, course); err != nil {
			return mapCourseError(err, "failed to update course")
		}

		s.logger.Info("course updated",
			zap.Int64("course_id", id),
			zap.Int64("user_id", actor.ID),
		)
		return nil
	})
}

// Delete removes a course owned by actor
func (s *CourseService) Delete(ctx context.Context, actor *models.User, id int64) error {
	return WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		if _, err := s.ownedCourse(ctx, actor, id); err != nil {
			return err
		}

		if err := s.courses.Delete(ctx, id); err != nil {
			return mapCourseError(err, "failed to delete course")
		}

		s.logger.Info("course deleted",
			zap.Int64("course_id", id),
			zap.Int64("user_id", actor.ID),
		)
		return nil
	})
}

// ownedCourse fetches a course and applies the ownership guard.
// A missing course is reported before ownership.
func (s *CourseService) ownedCourse(ctx context.Context, actor *models.User, id int64) (*models.Course, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, mapCourseError(err, "failed to get course")
	}

	if !CanModifyCourse(course, actor) {
		s.logger.Warn("course modification denied",
			zap.Int64("course_id", id),
			zap.Int64("user_id", actor.ID),
			zap.Int64("owner_id", course.UserID),
		)
		return nil, ErrNotCourseOwner
	}

	return course, nil
}

func mapCourseError(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCourseNotFound
	}
	return WrapInternal(message, err)
}
