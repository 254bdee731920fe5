package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/repositories"
	"github.com/upb/courses-api/repositories/memory"
	"go.uber.org/zap"
)

func newCourseServiceWithMock() (*CourseService, *MockCourseRepository) {
	repo := new(MockCourseRepository)
	return NewCourseService(repo, memory.NewTransactionManager(), zap.NewNop()), repo
}

func strPtr(s string) *string { return &s }

func TestCanModifyCourse(t *testing.T) {
	course := &models.Course{ID: 1, UserID: 5}

	assert.True(t, CanModifyCourse(course, &models.User{ID: 5}))
	assert.False(t, CanModifyCourse(course, &models.User{ID: 6}))
	assert.False(t, CanModifyCourse(course, nil))
	assert.False(t, CanModifyCourse(nil, &models.User{ID: 5}))
}

func TestCourseService_Get(t *testing.T) {
	svc, repo := newCourseServiceWithMock()
	repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Course{ID: 1, Title: "Build a Basic Bookcase"}, nil)
	repo.On("GetByID", mock.Anything, int64(999)).Return(nil, repositories.ErrNotFound)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, errors.New("db down"))

	course, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Build a Basic Bookcase", course.Title)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Equal(t, "course does not exist", err.(*DomainError).Message)

	_, err = svc.Get(context.Background(), 2)
	assert.Equal(t, ErrorTypeInternal, GetErrorType(err))
}

func TestCourseService_List(t *testing.T) {
	svc, repo := newCourseServiceWithMock()
	repo.On("List", mock.Anything).Return([]*models.Course{{ID: 1}, {ID: 2}}, nil)

	courses, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestCourseService_Create_SetsOwner(t *testing.T) {
	svc, repo := newCourseServiceWithMock()
	owner := &models.User{ID: 3}

	var stored *models.Course
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Course")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Course) }).
		Return(nil)

	course, err := svc.Create(context.Background(), owner, CourseInput{
		Title:         "Learn How to Program",
		Description:   "In this course, you'll learn how to write code.",
		EstimatedTime: strPtr("6 hours"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), course.ID)
	assert.Equal(t, int64(3), stored.UserID)
	assert.Equal(t, "6 hours", *stored.EstimatedTime)
	assert.Nil(t, stored.MaterialsNeeded)
}

func TestCourseService_Create_Errors(t *testing.T) {
	svc, repo := newCourseServiceWithMock()

	_, err := svc.Create(context.Background(), nil, CourseInput{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrOwnerNotFound).Once()
	_, err = svc.Create(context.Background(), &models.User{ID: 99}, CourseInput{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCourseService_Update(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.User
		setup   func(repo *MockCourseRepository)
		wantErr error
	}{
		{
			name:  "owner updates",
			actor: &models.User{ID: 1},
			setup: func(repo *MockCourseRepository) {
				repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Course{ID: 1, UserID: 1, Title: "old"}, nil)
				repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
					return c.Title == "new" && c.UserID == 1
				})).Return(nil)
			},
		},
		{
			name:  "non-owner forbidden",
			actor: &models.User{ID: 2},
			setup: func(repo *MockCourseRepository) {
				repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Course{ID: 1, UserID: 1}, nil)
			},
			wantErr: ErrNotCourseOwner,
		},
		{
			name:  "missing course",
			actor: &models.User{ID: 2},
			setup: func(repo *MockCourseRepository) {
				repo.On("GetByID", mock.Anything, int64(1)).Return(nil, repositories.ErrNotFound)
			},
			wantErr: ErrCourseNotFound,
		},
		{
			name:  "course deleted concurrently",
			actor: &models.User{ID: 1},
			setup: func(repo *MockCourseRepository) {
				repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Course{ID: 1, UserID: 1}, nil)
				repo.On("Update", mock.Anything, mock.Anything).Return(repositories.ErrNotFound)
			},
			wantErr: ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newCourseServiceWithMock()
			tt.setup(repo)

			err := svc.Update(context.Background(), tt.actor, 1, CourseInput{Title: "new", Description: "d"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			if errors.Is(tt.wantErr, ErrNotCourseOwner) {
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCourseService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc, repo := newCourseServiceWithMock()
		repo.On("GetByID", mock.Anything, int64(4)).Return(&models.Course{ID: 4, UserID: 1}, nil)
		repo.On("Delete", mock.Anything, int64(4)).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), &models.User{ID: 1}, 4))
		repo.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, repo := newCourseServiceWithMock()
		repo.On("GetByID", mock.Anything, int64(4)).Return(&models.Course{ID: 4, UserID: 1}, nil)

		err := svc.Delete(context.Background(), &models.User{ID: 2}, 4)

		assert.ErrorIs(t, err, ErrNotCourseOwner)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing course", func(t *testing.T) {
		svc, repo := newCourseServiceWithMock()
		repo.On("GetByID", mock.Anything, int64(4)).Return(nil, repositories.ErrNotFound)

		err := svc.Delete(context.Background(), &models.User{ID: 1}, 4)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_RepeatedDeleteWithMemoryStore(t *testing.T) {
	store := memory.NewStore()
	repos := store.NewRepositories()
	ctx := context.Background()

	owner := models.NewUser("Joe", "Smith", "joe@smith.com", "hash")
	require.NoError(t, repos.Users.Create(ctx, owner))

	svc := NewCourseService(repos.Courses, memory.NewTransactionManager(), zap.NewNop())
	course, err := svc.Create(ctx, owner, CourseInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, course.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Owner)
	assert.Equal(t, owner.ID, fetched.Owner.ID)

	require.NoError(t, svc.Delete(ctx, owner, course.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, course.ID), ErrCourseNotFound)
}
