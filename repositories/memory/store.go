// Package memory provides in-process implementations of the repository
// interfaces. Data lives for the lifetime of the Store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/repositories"
)

// Store holds users and courses behind a single RWMutex
type Store struct {
	mu           sync.RWMutex
	users        map[int64]*models.User
	courses      map[int64]*models.Course
	nextUserID   int64
	nextCourseID int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]*models.User),
		courses: make(map[int64]*models.Course),
	}
}

// NewRepositories returns repositories backed by s
func (s *Store) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:   &UserRepository{store: s},
		Courses: &CourseRepository{store: s},
	}
}

// UserRepository implements repositories.UserRepository
type UserRepository struct {
	store *Store
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.EmailAddress == user.EmailAddress {
			return repositories.ErrDuplicateEmail
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetByEmail retrieves a user by exact email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.EmailAddress == email {
			u := *user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user for email %s: %w", email, repositories.ErrNotFound)
}

// List retrieves all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CourseRepository implements repositories.CourseRepository
type CourseRepository struct {
	store *Store
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[course.UserID]; !ok {
		return fmt.Errorf("user %d: %w", course.UserID, repositories.ErrOwnerNotFound)
	}

	s.nextCourseID++
	course.ID = s.nextCourseID
	stored := *course
	stored.Owner = nil
	s.courses[course.ID] = &stored
	return nil
}

// GetByID retrieves a course and its owner by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, repositories.ErrNotFound)
	}
	return s.withOwner(course), nil
}

// List retrieves all courses with their owners ordered by ID
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		courses = append(courses, s.withOwner(course))
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// Update updates the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.courses[course.ID]
	if !ok {
		return fmt.Errorf("course %d: %w", course.ID, repositories.ErrNotFound)
	}
	stored.Title = course.Title
	stored.Description = course.Description
	stored.EstimatedTime = course.EstimatedTime
	stored.MaterialsNeeded = course.MaterialsNeeded
	stored.UpdatedAt = course.UpdatedAt
	return nil
}

// Delete deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return fmt.Errorf("course %d: %w", id, repositories.ErrNotFound)
	}
	delete(s.courses, id)
	return nil
}

// withOwner copies course and attaches a copy of its owner without the password hash.
// Callers must hold s.mu.
func (s *Store) withOwner(course *models.Course) *models.Course {
	c := *course
	if owner, ok := s.users[course.UserID]; ok {
		o := *owner
		o.Password = ""
		c.Owner = &o
	}
	return &c
}
