package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"labtrack-backend/internal/cache"
	"labtrack-backend/internal/config"
	"labtrack-backend/internal/database"
	"labtrack-backend/internal/db"
	"labtrack-backend/internal/handlers"
	"labtrack-backend/internal/health"
	h "labtrack-backend/internal/http"
	"labtrack-backend/internal/middleware"
	"labtrack-backend/internal/repositories"
	"labtrack-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Idempotent schema creation on startup
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Redis is optional; the listings just skip the cache without it
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	} else {
		log.Printf("[Cache] Redis connected")
	}

	sessionRepo := repositories.NewSessionRepository(pool)
	sessionService := services.NewSessionService(sessionRepo, cfg.Session.LimitSeconds)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	healthChecker := health.NewHealthChecker(pool)
	healthHandler := handlers.NewHealthHandler(healthChecker)
	monitoringHandler := handlers.NewMonitoringHandler()

	router := h.NewRouter(sessionHandler, healthHandler, monitoringHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := corsMiddleware(middleware.PanicRecovery(middleware.MetricsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Lab session tracker listening on %s (session limit %ds)", addr, cfg.Session.LimitSeconds)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
