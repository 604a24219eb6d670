package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hootline/internal/config"
	"hootline/internal/db"
	"hootline/internal/router"
	"hootline/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	var svc services.HootService
	if cfg.UseRemoteAPI() {
		log.Printf("Using hoot API at %s", cfg.HootAPIURL)
		svc = services.NewHootClient(cfg.HootAPIURL, cfg.APITimeout)
	} else {
		log.Println("HOOT_API_URL not set, serving hoots from the database")
		svc = services.NewHootStore(db.Init(cfg.DatabaseURL))
	}

	r := router.New(cfg, svc)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Hootline server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
