package routes

import (
	"mingl_server/controllers"
	"mingl_server/services"

	"github.com/gorilla/mux"
)

// RegisterDecisionRoutes sets up routes for decisions under /api/decisions
func RegisterDecisionRoutes(r *mux.Router, decisionService *services.DecisionService) {
	controller := controllers.NewDecisionController(decisionService)

	decisionRouter := r.PathPrefix("/api/decisions").Subrouter()
	decisionRouter.HandleFunc("", controller.HandleSubmitDecision).Methods("POST")
	decisionRouter.HandleFunc("/quota/{userId}", controller.HandleRemainingQuota).Methods("GET")
	decisionRouter.HandleFunc("/matchCheck", controller.HandleMatchCheck).Methods("POST")
}
