package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/upb/courses-api/auth"
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/repositories"
	"go.uber.org/zap"
)

// LookupStrategy selects how Authenticate resolves a principal by email
type LookupStrategy string

const (
	// LookupScan lists every user and matches the email exactly
	LookupScan LookupStrategy = "scan"
	// LookupIndexed uses the repository's point lookup on email
	LookupIndexed LookupStrategy = "indexed"
)

// Authentication failure reasons. They are logged, never sent to clients.
const (
	ReasonUserNotFound = "user not found for username: %s"
	ReasonBadPassword  = "authentication failure for username: %s"
)

// SignUpInput carries the fields of a new account
type SignUpInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

// UserService handles account creation and credential checks
type UserService struct {
	users  repositories.UserRepository
	hasher auth.PasswordHasher
	lookup LookupStrategy
	logger *zap.Logger

	// dummyHash is verified against when no user matches, so unknown and
	// known emails cost the same hashing work
	dummyOnce sync.Once
	dummyHash string
}

// dummyPassword only seeds dummyHash; no account can authenticate with it
const dummyPassword = "courses-api:no-such-user"

// NewUserService creates a new user service. An unknown lookup falls back to LookupIndexed.
func NewUserService(users repositories.UserRepository, hasher auth.PasswordHasher, lookup LookupStrategy, logger *zap.Logger) *UserService {
	if lookup != LookupScan {
		lookup = LookupIndexed
	}
	return &UserService{
		users:  users,
		hasher: hasher,
		lookup: lookup,
		logger: logger,
	}
}

// SignUp hashes the password and stores the new user
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(input.FirstName, input.LastName, input.EmailAddress, hash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, NewValidationError(EmailInUseMessage)
		}
		return nil, WrapInternal("failed to create user", err)
	}

	s.logger.Info("user created",
		zap.Int64("user_id", user.ID),
	)

	return user, nil
}

// Authenticate resolves the user owning email and verifies password.
// On a credential failure it returns ErrAccessDenied together with the reason to log.
// Store and hashing failures are internal errors with an empty reason.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.resolve(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		s.verifyDummy(password)
		return nil, fmt.Sprintf(ReasonUserNotFound, email), ErrAccessDenied
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, "", WrapInternal("failed to verify password", err)
	}
	if !ok {
		return nil, fmt.Sprintf(ReasonBadPassword, email), ErrAccessDenied
	}

	return user, "", nil
}

// verifyDummy runs a comparison the caller cannot distinguish from a real one
func (s *UserService) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare dummy password hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	_, _ = s.hasher.Verify(password, s.dummyHash)
}

// resolve returns (nil, nil) when no user has the email
func (s *UserService) resolve(ctx context.Context, email string) (*models.User, error) {
	if s.lookup == LookupScan {
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, WrapInternal("failed to list users", err)
		}
		return FindUserByEmail(users, email), nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, WrapInternal("failed to get user by email", err)
	}
	return user, nil
}

// FindUserByEmail returns the first user whose email matches exactly, or nil
func FindUserByEmail(users []*models.User, email string) *models.User {
	for _, u := range users {
		if u.EmailAddress == email {
			return u
		}
	}
	return nil
}
