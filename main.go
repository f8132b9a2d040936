package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"mingl_server/config"
	"mingl_server/routes"
	"mingl_server/services"
	"mingl_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	settings := config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Realtime fan-out
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()
	broadcaster := &socket.Broadcaster{Server: socketServer}

	// Initialize Services
	eventService := &services.EventService{Dynamo: dynamoService}
	profileService := &services.ProfileService{Dynamo: dynamoService, Notify: broadcaster}
	candidateService := &services.CandidateService{Dynamo: dynamoService, Events: eventService}
	decisionService := &services.DecisionService{
		Dynamo:       dynamoService,
		Notify:       broadcaster,
		SuperlikeCap: settings.SuperlikeCap,
	}
	s3Service, err := services.NewS3Service(context.Background(), settings.AWSRegion, settings.S3Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Mingl")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterCandidateRoutes(r, candidateService)
	routes.RegisterDecisionRoutes(r, decisionService)
	routes.RegisterEventRoutes(r, eventService)
	routes.RegisterPhotoRoutes(r, s3Service)
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{settings.AllowedCORS},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", settings.Port)
	log.Fatal(http.ListenAndServe(":"+settings.Port, corsHandler))
}
