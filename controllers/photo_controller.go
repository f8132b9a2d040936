package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"mingl_server/services"
)

// PhotoController handles presigned photo URL requests
type PhotoController struct {
	S3Service *services.S3Service
}

// NewPhotoController creates a new PhotoController instance
func NewPhotoController(s3Service *services.S3Service) *PhotoController {
	return &PhotoController{S3Service: s3Service}
}

// HandleUploadURL returns a presigned upload URL and the object key
func (phc *PhotoController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"userId"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.FileType == "" {
		http.Error(w, "userId and fileType are required", http.StatusBadRequest)
		return
	}

	url, key, err := phc.S3Service.GenerateUploadURL(context.Background(), request.UserID, request.FileType)
	if err != nil {
		log.Println("Error presigning upload:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"uploadUrl": url, "key": key})
}

// HandleReadURL returns a presigned read URL for a stored photo
func (phc *PhotoController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	url, err := phc.S3Service.GenerateReadURL(context.Background(), key)
	if err != nil {
		log.Println("Error presigning read:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"readUrl": url})
}
