package handlers

import (
	"net/http"

	"github.com/upb/courses-api/utils"
)

// HandleWelcome handles GET /
func HandleWelcome(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, utils.MessageResponse{Message: "Welcome to the REST API project!"})
}

// HandleNotFound answers any request that matched no route
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteNotFound(w, "Route Not Found")
}
