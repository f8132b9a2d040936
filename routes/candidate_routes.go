package routes

import (
	"mingl_server/controllers"
	"mingl_server/services"

	"github.com/gorilla/mux"
)

// RegisterCandidateRoutes sets up routes for candidate pages under /api/candidates
func RegisterCandidateRoutes(r *mux.Router, candidateService *services.CandidateService) {
	controller := controllers.NewCandidateController(candidateService)

	candidateRouter := r.PathPrefix("/api/candidates").Subrouter()
	candidateRouter.HandleFunc("", controller.HandleFetchPage).Methods("POST")
}
