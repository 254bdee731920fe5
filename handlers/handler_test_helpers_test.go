package handlers

import (
	"net/http"

	"github.com/upb/courses-api/middleware"
	"github.com/upb/courses-api/models"
)

// asUser stands in for RequireAuth in handler tests
func asUser(user *models.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(middleware.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}
