package routes

import (
	"mingl_server/controllers"
	"mingl_server/services"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up routes for photo URLs under /api/photos
func RegisterPhotoRoutes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewPhotoController(s3Service)

	photoRouter := r.PathPrefix("/api/photos").Subrouter()
	photoRouter.HandleFunc("/uploadUrl", controller.HandleUploadURL).Methods("POST")
	photoRouter.HandleFunc("/readUrl", controller.HandleReadURL).Methods("GET")
}
