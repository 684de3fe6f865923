package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/docs"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Health check and contact form endpoint for the portfolio site.
// @host            localhost:3001
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	gin.SetMode(cfg.GinMode)
	logger.Init(cfg.GinMode)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	audit := security.NewAuditLogger("portfolio-backend", cfg.GinMode)
	defer audit.Sync()

	// 3. Setup Mail Transport
	transport := email.NewTransport(cfg.Mail)
	if !cfg.Mail.IsConfigured() {
		logger.Log.Warn("Mail transport not fully configured - contact form will be unavailable", "transport", transport.Name())
	}

	// 4. Setup UseCases
	contactUC := usecase.NewContactUsecase(cfg.Mail, transport, validation.New(), audit)
	healthUC := usecase.NewHealthUsecase()

	// 5. Setup Router
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", "addr", srv.Addr, "transport", transport.Name(), "owner_copy", cfg.Mail.SendOwnerCopy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// In-flight sends are not cancelled; give them time to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
