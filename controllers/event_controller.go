package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mingl_server/models"
	"mingl_server/services"

	"github.com/gorilla/mux"
)

// EventController handles HTTP requests for events and RSVPs
type EventController struct {
	EventService *services.EventService
}

// NewEventController creates a new EventController instance
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// HandleCreateEvent creates a one-off event or a weekly series
func (ec *EventController) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var request struct {
		models.Event
		Occurrences int `json:"occurrences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := ec.EventService.CreateEvent(context.Background(), request.Event, request.Occurrences)
	if err != nil {
		log.Println("Error creating event:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"events": created})
}

// HandleListEvents lists upcoming events for a city
func (ec *EventController) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		http.Error(w, "city is required", http.StatusBadRequest)
		return
	}

	events, err := ec.EventService.ListEventsByCity(context.Background(), city)
	if err != nil {
		log.Println("Error listing events:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"events": events})
}

// HandleRSVP records or cancels an attendance intent
func (ec *EventController) HandleRSVP(w http.ResponseWriter, r *http.Request) {
	var request struct {
		EventID string `json:"eventId"`
		UserID  string `json:"userId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.EventID == "" || request.UserID == "" {
		http.Error(w, "eventId and userId are required", http.StatusBadRequest)
		return
	}

	var err error
	if request.Status == "cancel" {
		err = ec.EventService.CancelRSVP(context.Background(), request.EventID, request.UserID)
	} else {
		err = ec.EventService.SetRSVP(context.Background(), request.EventID, request.UserID, request.Status)
	}
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Error handling rsvp:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "RSVP updated"})
}

// HandleAttendanceCounts returns RSVP counts for the owner panel
func (ec *EventController) HandleAttendanceCounts(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	counts, err := ec.EventService.Counts(context.Background(), eventID)
	if err != nil {
		log.Println("Error fetching counts:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}
