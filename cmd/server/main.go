package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "dojo-membership-backend/internal/api/http"
	"dojo-membership-backend/internal/config"
	"dojo-membership-backend/internal/logger"
	"dojo-membership-backend/internal/repository/postgres"
	"dojo-membership-backend/internal/security"
	"dojo-membership-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Dojo Membership Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	auditSvc := service.NewAuditService(store.AuditLogRepository)
	rejectionSvc := service.NewRejectionService(
		store.ApplicationRepository,
		store.VoteRepository,
		store.UserRepository,
		emailSvc,
		auditSvc,
	)
	approvalSvc := service.NewApprovalService(
		store.ApplicationRepository,
		store.VoteRepository,
		store.UserRepository,
		emailSvc,
		auditSvc,
		cfg.Approval.CheckoutBaseURL,
	)
	applicationSvc := service.NewApplicationService(
		store.ApplicationRepository,
		store.UserRepository,
		rejectionSvc,
		auditSvc,
	)

	// Initialize HTTP handlers
	applicationHandler := httpapi.NewApplicationHandler(applicationSvc, rejectionSvc)
	approvalHandler := httpapi.NewApprovalHandler(approvalSvc, rejectionSvc)

	router := httpapi.NewRouter(tokenManager, applicationHandler, approvalHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
