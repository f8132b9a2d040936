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

// ProfileController handles HTTP requests for user profiles
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController creates a new ProfileController instance
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// HandleAddProfile creates or replaces a profile
func (pc *ProfileController) HandleAddProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	saved, err := pc.ProfileService.AddProfile(context.Background(), profile)
	if err != nil {
		log.Println("Error saving profile:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

// HandleGetProfile fetches a profile by id
func (pc *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := pc.ProfileService.GetProfile(context.Background(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Error fetching profile:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandleUpdateLocation updates a profile's coordinates and city
func (pc *ProfileController) HandleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string  `json:"userId"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		City      string  `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	err := pc.ProfileService.UpdateLocation(context.Background(), request.UserID, request.Latitude, request.Longitude, request.City)
	if err != nil {
		log.Println("Error updating location:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Location updated"})
}

// HandleDeleteProfile deletes a profile
func (pc *ProfileController) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := pc.ProfileService.DeleteProfile(context.Background(), userID); err != nil {
		log.Println("Error deleting profile:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Profile deleted"})
}
