package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"formflow/internal/service"
	"formflow/internal/transport/rest/handler"
	"formflow/internal/transport/rest/middleware"
	"formflow/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	FormService         *service.FormService
	RegistrationService *service.RegistrationService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService, c.RegistrationService)
	regHandler := handler.NewRegistrationHandler(c.RegistrationService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{id}/payload", formHandler.GetPayload).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{id}/registrations", regHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/forms/{id}", wsHandler.OrganizerWS).Methods("GET")
	v1.HandleFunc("/ws/registrations/{id}", wsHandler.RegistrantWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Organizer routes (require organizer auth)
	organizerRoutes := v1.NewRoute().Subrouter()
	organizerRoutes.Use(authMW.RequireOrganizer)

	organizerRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	organizerRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}", formHandler.Get).Methods("GET", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/schema", formHandler.GetSchema).Methods("GET", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/schema", formHandler.UpdateSchema).Methods("PUT", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/registrations", formHandler.ListRegistrations).Methods("GET", "OPTIONS")

	// Schema editor routes (organizer only)
	organizerRoutes.HandleFunc("/forms/{id}/steps", formHandler.AddStep).Methods("POST", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/steps/{key}", formHandler.UpdateStep).Methods("PATCH", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/steps/{key}", formHandler.RemoveStep).Methods("DELETE", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/steps/{key}/fields", formHandler.AddField).Methods("POST", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/fields/{name}", formHandler.UpdateField).Methods("PATCH", "OPTIONS")
	organizerRoutes.HandleFunc("/forms/{id}/fields/{name}", formHandler.RemoveField).Methods("DELETE", "OPTIONS")

	// Registrant routes (require registrant auth)
	registrantRoutes := v1.NewRoute().Subrouter()
	registrantRoutes.Use(authMW.RequireRegistrant)

	registrantRoutes.HandleFunc("/registrations/{id}/answers", regHandler.SetAnswer).Methods("PUT", "OPTIONS")
	registrantRoutes.HandleFunc("/registrations/{id}/guardian", regHandler.SetGuardian).Methods("PUT", "OPTIONS")
	registrantRoutes.HandleFunc("/registrations/{id}/participants", regHandler.AddParticipant).Methods("POST", "OPTIONS")
	registrantRoutes.HandleFunc("/registrations/{id}/participants/{pid}", regHandler.RemoveParticipant).Methods("DELETE", "OPTIONS")
	registrantRoutes.HandleFunc("/registrations/{id}/navigate", regHandler.Navigate).Methods("POST", "OPTIONS")
	registrantRoutes.HandleFunc("/registrations/{id}/visibility", regHandler.Visibility).Methods("GET", "OPTIONS")
	registrantRoutes.HandleFunc("/registrations/{id}/submit", regHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
