package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mingl_server/services"
)

// CandidateController handles HTTP requests for candidate pages
type CandidateController struct {
	CandidateService *services.CandidateService
}

// NewCandidateController creates a new CandidateController instance
func NewCandidateController(candidateService *services.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// HandleFetchPage returns one page of swipe candidates for a viewer
func (cc *CandidateController) HandleFetchPage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		EventID string `json:"eventId"`
		Offset  int    `json:"offset"`
		Limit   int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	page, err := cc.CandidateService.FetchCandidatePage(context.Background(), request.UserID, request.EventID, request.Offset, request.Limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationRequired):
			writeReason(w, http.StatusPreconditionFailed, "locationRequired")
		case errors.Is(err, services.ErrProfileNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			log.Println("Error fetching candidates:", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func writeReason(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"reason": reason})
}
