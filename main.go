package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"silverback/database"
	"silverback/handlers"
	"silverback/routes"
	"silverback/service"
	"silverback/storage"
)

func main() {
	log.Println("Starting silverback server...")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Println("MONGODB_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}

	dbName := envOr("DB_NAME", "silverback")
	uploadDir := envOr("UPLOAD_DIR", "uploads")
	port := envOr("PORT", "4000")

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("Connecting to MongoDB...")

	var store *database.Store
	var dbErr error
	for i := 1; i <= 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		store, dbErr = database.Connect(ctx, uri, dbName)
		cancel()
		if dbErr != nil {
			log.Printf("MongoDB connection attempt %d failed: %v", i, dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("Failed to connect to MongoDB: ", dbErr)
	}
	log.Println("MongoDB connected successfully")

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to create indexes: ", err)
		}
	}

	uploads, err := storage.NewLocalStore(uploadDir)
	if err != nil {
		log.Fatal("Failed to prepare upload directory: ", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	resolver := service.NewUserResolver(store.Users())
	tweets := service.NewTweetService(store.Tweets(), resolver)
	handler := handlers.NewHandler(tweets, uploads)

	router := routes.SetupRouter(handler, uploadDir, corsOrigins())

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	if err := store.Disconnect(context.Background()); err != nil {
		log.Println("MongoDB disconnect error: ", err)
	}

	log.Println("Server stopped gracefully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func corsOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:4000"}
}
