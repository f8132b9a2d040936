package routes

import (
	"mingl_server/controllers"
	"mingl_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up routes for events and RSVPs under /api/events
func RegisterEventRoutes(r *mux.Router, eventService *services.EventService) {
	controller := controllers.NewEventController(eventService)

	eventRouter := r.PathPrefix("/api/events").Subrouter()
	eventRouter.HandleFunc("", controller.HandleCreateEvent).Methods("POST")
	eventRouter.HandleFunc("", controller.HandleListEvents).Methods("GET")
	eventRouter.HandleFunc("/rsvp", controller.HandleRSVP).Methods("POST")
	eventRouter.HandleFunc("/{eventId}/counts", controller.HandleAttendanceCounts).Methods("GET")
}
