package models

import (
	"time"
)

// Course is a unit of study owned by exactly one User.
type Course struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	EstimatedTime   *string   `json:"estimatedTime,omitempty" db:"estimated_time"`
	MaterialsNeeded *string   `json:"materialsNeeded,omitempty" db:"materials_needed"`
	UserID          int64     `json:"userId" db:"user_id"` // owner, immutable after creation
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Owner is populated by reads that join the users table.
	Owner *User `json:"-" db:"-"`
}

// NewCourse creates a new Course owned by ownerID
func NewCourse(ownerID int64, title, description string, estimatedTime, materialsNeeded *string) *Course {
	now := time.Now().UTC()
	return &Course{
		Title:           title,
		Description:     description,
		EstimatedTime:   estimatedTime,
		MaterialsNeeded: materialsNeeded,
		UserID:          ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsOwnedBy reports whether userID owns the course
func (c *Course) IsOwnedBy(userID int64) bool {
	return c.UserID == userID
}

// ApplyUpdate overwrites the mutable fields and bumps UpdatedAt. The owner is left untouched.
func (c *Course) ApplyUpdate(title, description string, estimatedTime, materialsNeeded *string) {
	c.Title = title
	c.Description = description
	c.EstimatedTime = estimatedTime
	c.MaterialsNeeded = materialsNeeded
	c.UpdatedAt = time.Now().UTC()
}
