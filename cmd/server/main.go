package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formflow/internal/cache"
	"formflow/internal/config"
	"formflow/internal/repository"
	"formflow/internal/service"
	"formflow/internal/transport/rest"
	"formflow/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDBName)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	formRepo := repository.NewFormRepo(db)
	regRepo := repository.NewRegistrationRepo(db)

	// Initialize caches
	schemaCache := cache.NewSchemaCache(rdb)
	regCache := cache.NewRegistrationCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	formSvc := service.NewFormService(formRepo, schemaCache)
	regSvc := service.NewRegistrationService(formSvc, regRepo, regCache, authSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	regSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		FormService:         formSvc,
		RegistrationService: regSvc,
		WSHub:               wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Organizer auth: username=%s", cfg.OrganizerUsername)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/forms")
		log.Println("  GET  /v1/forms/{id}/payload")
		log.Println("  POST /v1/forms/{id}/registrations")
		log.Println("  PUT  /v1/registrations/{id}/answers")
		log.Println("  POST /v1/registrations/{id}/submit")
		log.Println("  WS   /v1/ws/forms/{id}")
		log.Println("  WS   /v1/ws/registrations/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
