package repositories

import (
	"context"
	"errors"

	"github.com/upb/courses-api/models"
)

var (
	// ErrNotFound is returned when no row matches the requested key
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user with the same email address already exists
	ErrDuplicateEmail = errors.New("email address already exists")

	// ErrOwnerNotFound is returned when a course references a user that does not exist
	ErrOwnerNotFound = errors.New("course owner does not exist")
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction. Repositories called with the returned
	// transaction's Context participate in it.
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create inserts a new user and sets its ID.
	// Returns ErrDuplicateEmail when the email address is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by exact email address
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves all users ordered by ID
	List(ctx context.Context) ([]*models.User, error)
}

// CourseRepository handles course data operations.
// Reads populate Course.Owner.
type CourseRepository interface {
	// Create inserts a new course and sets its ID.
	// Returns ErrOwnerNotFound when UserID does not reference an existing user.
	Create(ctx context.Context, course *models.Course) error

	// GetByID retrieves a course and its owner by ID
	GetByID(ctx context.Context, id int64) (*models.Course, error)

	// List retrieves all courses with their owners ordered by ID
	List(ctx context.Context) ([]*models.Course, error)

	// Update updates the mutable fields of a course
	Update(ctx context.Context, course *models.Course) error

	// Delete deletes a course
	Delete(ctx context.Context, id int64) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users   UserRepository
	Courses CourseRepository
}
