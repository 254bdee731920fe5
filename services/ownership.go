package services

import "github.com/upb/courses-api/models"

// CanModifyCourse reports whether user owns course
func CanModifyCourse(course *models.Course, user *models.User) bool {
	if course == nil || user == nil {
		return false
	}
	return course.IsOwnedBy(user.ID)
}
