package handlers

import (
	"github.com/upb/courses-api/models"
	"github.com/upb/courses-api/services"
)

// SignUpRequest represents a request to create a user
type SignUpRequest struct {
	FirstName    string `json:"firstName" validate:"notblank"`
	LastName     string `json:"lastName" validate:"notblank"`
	EmailAddress string `json:"emailAddress" validate:"notblank,email"`
	Password     string `json:"password" validate:"notblank"`
}

// ValidationMessages returns the client-facing message for each failing field
func (SignUpRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"firstName":          "Please provide a first name",
		"lastName":           "Please provide a last name",
		"emailAddress":       "Please provide an email address",
		"emailAddress.email": "Please provide a valid email address",
		"password":           "Please provide a password",
	}
}

func (r *SignUpRequest) toInput() services.SignUpInput {
	return services.SignUpInput{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		EmailAddress: r.EmailAddress,
		Password:     r.Password,
	}
}

// CourseRequest represents a request to create or update a course.
// Any id or userId in the body is ignored.
type CourseRequest struct {
	Title           string  `json:"title" validate:"notblank"`
	Description     string  `json:"description" validate:"notblank"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// ValidationMessages returns the client-facing message for each failing field
func (CourseRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"title":       "Please provide a title",
		"description": "Please provide a description",
	}
}

func (r *CourseRequest) toInput() services.CourseInput {
	return services.CourseInput{
		Title:           r.Title,
		Description:     r.Description,
		EstimatedTime:   r.EstimatedTime,
		MaterialsNeeded: r.MaterialsNeeded,
	}
}

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// CourseResponse represents a course in API responses
type CourseResponse struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	EstimatedTime   *string       `json:"estimatedTime"`
	MaterialsNeeded *string       `json:"materialsNeeded"`
	UserID          int64         `json:"userId"`
	Owner           *UserResponse `json:"owner,omitempty"`
}

func toUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}

func toCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
		Owner:           toUserResponse(c.Owner),
	}
}

func toCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	return out
}
