package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/repositories"
	"go.uber.org/zap"
)

// The owner join never selects the password column.
const courseWithOwnerQuery = `
	SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed,
	       c.user_id, c.created_at, c.updated_at,
	       u.id, u.first_name, u.last_name, u.email_address, u.created_at, u.updated_at
	FROM courses c
	JOIN users u ON u.id = c.user_id
`

// CourseRepository implements the repositories.CourseRepository interface
type CourseRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *DB, logger *zap.Logger) repositories.CourseRepository {
	return &CourseRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		course.Title,
		course.Description,
		toNullString(course.EstimatedTime),
		toNullString(course.MaterialsNeeded),
		course.UserID,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", course.UserID, repositories.ErrOwnerNotFound)
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	r.logger.Debug("course created", zap.Int64("id", course.ID), zap.Int64("user_id", course.UserID))
	return nil
}

// GetByID retrieves a course and its owner by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := courseWithOwnerQuery + ` WHERE c.id = $1`

	course, err := scanCourseWithOwner(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return course, nil
}

// List retrieves all courses with their owners
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := courseWithOwnerQuery + ` ORDER BY c.id`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourseWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update updates the mutable fields of a course. user_id is never written.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $2,
		    description = $3,
		    estimated_time = $4,
		    materials_needed = $5,
		    updated_at = $6
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		toNullString(course.EstimatedTime),
		toNullString(course.MaterialsNeeded),
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course %d: %w", course.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("course updated", zap.Int64("id", course.ID))
	return nil
}

// Delete deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM courses WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course %d: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("course deleted", zap.Int64("id", id))
	return nil
}

func scanCourseWithOwner(row rowScanner) (*models.Course, error) {
	course := &models.Course{Owner: &models.User{}}
	var estimatedTime, materialsNeeded sql.NullString

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&estimatedTime,
		&materialsNeeded,
		&course.UserID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.Owner.ID,
		&course.Owner.FirstName,
		&course.Owner.LastName,
		&course.Owner.EmailAddress,
		&course.Owner.CreatedAt,
		&course.Owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	course.EstimatedTime = fromNullString(estimatedTime)
	course.MaterialsNeeded = fromNullString(materialsNeeded)
	return course, nil
}
