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

// DecisionController handles HTTP requests for swipe decisions
type DecisionController struct {
	DecisionService *services.DecisionService
}

// NewDecisionController creates a new DecisionController instance
func NewDecisionController(decisionService *services.DecisionService) *DecisionController {
	return &DecisionController{DecisionService: decisionService}
}

// HandleSubmitDecision records a like/pass/superlike decision
func (dc *DecisionController) HandleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID  string `json:"actorId"`
		TargetID string `json:"targetId"`
		Kind     string `json:"kind"`
		EventID  string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ActorID == "" || request.TargetID == "" || request.Kind == "" {
		http.Error(w, "actorId, targetId, and kind are required", http.StatusBadRequest)
		return
	}

	err := dc.DecisionService.SubmitDecision(context.Background(), request.ActorID, request.TargetID, models.DecisionKind(request.Kind), request.EventID)
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			writeReason(w, http.StatusConflict, "quotaExceeded")
			return
		}
		log.Println("Error submitting decision:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Decision recorded"})
}

// HandleRemainingQuota returns today's remaining superlikes for a user
func (dc *DecisionController) HandleRemainingQuota(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	remaining, err := dc.DecisionService.RemainingSuperlikes(context.Background(), userID)
	if err != nil {
		log.Println("Error fetching quota:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"remaining": remaining})
}

// HandleMatchCheck runs the mutual-match consistency check
func (dc *DecisionController) HandleMatchCheck(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID  string `json:"actorId"`
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ActorID == "" || request.TargetID == "" {
		http.Error(w, "actorId and targetId are required", http.StatusBadRequest)
		return
	}

	matched, matchID, err := dc.DecisionService.CheckMatchConsistency(context.Background(), request.ActorID, request.TargetID)
	if err != nil {
		log.Println("Error checking match:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matched": matched,
		"matchId": matchID,
	})
}
