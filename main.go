package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guia-piracicaba-backend/config"
	"guia-piracicaba-backend/database"
	"guia-piracicaba-backend/drafts"
	"guia-piracicaba-backend/handlers"
	"guia-piracicaba-backend/logger"
	"guia-piracicaba-backend/middleware"
	"guia-piracicaba-backend/routes"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	for _, w := range cfg.Warnings() {
		logrus.Warn(w)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	if err := utils.RegisterBindingValidators(); err != nil {
		logrus.WithError(err).Fatal("Failed to register validators")
	}

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Create default admin user if not exists
	if err := database.CreateDefaultAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.WithError(err).Warn("Could not create default admin")
	}

	if cfg.SeedSampleData {
		if err := database.CreateSampleBusinesses(db); err != nil {
			logrus.WithError(err).Warn("Could not create sample businesses")
		}
	}

	s := store.New(db)
	loc := cfg.Location()
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	defer limiter.Stop()

	// Setup Gin router
	r := gin.Default()

	// CORS configuration - filter out empty strings from AllowOrigins
	origins := []string{cfg.FrontendURL, cfg.AdminURL}
	var filteredOrigins []string
	for _, o := range origins {
		if o != "" {
			filteredOrigins = append(filteredOrigins, o)
		}
	}
	if len(filteredOrigins) == 0 {
		filteredOrigins = []string{"http://localhost:3000"}
		logrus.Warn("No CORS origins configured, defaulting to http://localhost:3000")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     filteredOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Store:   s,
		Drafts:  drafts.NewRegistry(s, cfg.DraftIdleTTL),
		Now:     handlers.Clock(func() time.Time { return time.Now().In(loc) }),
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Error("Error closing database connection")
		} else {
			logrus.Info("Database connection closed")
		}
	}

	logrus.Info("Server exited gracefully")
}
