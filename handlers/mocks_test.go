package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/services"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SignUp(ctx context.Context, input services.SignUpInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCourseService is a mock implementation of CourseService
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) List(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseService) Create(ctx context.Context, owner *models.User, input services.CourseInput) (*models.Course, error) {
	args := m.Called(ctx, owner, input)
	if c := args.Get(0); c != nil {
		return c.(*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseService) Update(ctx context.Context, actor *models.User, id int64, input services.CourseInput) error {
	args := m.Called(ctx, actor, id, input)
	return args.Error(0)
}

func (m *MockCourseService) Delete(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
