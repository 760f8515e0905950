package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "carloc-backend/internal/api/http"
	"carloc-backend/internal/config"
	"carloc-backend/internal/logger"
	"carloc-backend/internal/repository/postgres"
	"carloc-backend/internal/security"
	"carloc-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env is fine; env vars may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental back office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	uow := postgres.NewUnitOfWork(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	settingsSvc := service.NewSettingsService(store.SettingRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	clientSvc := service.NewClientService(store.ClientRepository)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, store.ReservationRepository, store.MaintenanceRepository)
	agencySvc := service.NewAgencyService(store.AgencyRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.VehicleRepository,
		store.ClientRepository,
		store.AgencyRepository,
		store.MaintenanceRepository,
		uow,
		settingsSvc,
		emailSvc,
	)
	quoteSvc := service.NewQuoteService(store.QuoteRepository, store.VehicleRepository, store.ClientRepository, uow)
	contractSvc := service.NewContractService(store.ContractRepository)
	maintenanceSvc := service.NewMaintenanceService(store.MaintenanceRepository, store.VehicleRepository, uow)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.ContractRepository, store.ReservationRepository)

	handlers := httpapi.NewHandlers(
		authSvc,
		userSvc,
		reservationSvc,
		quoteSvc,
		contractSvc,
		vehicleSvc,
		clientSvc,
		agencySvc,
		maintenanceSvc,
		paymentSvc,
		settingsSvc,
	)

	router := httpapi.NewRouter(db, tokenManager, handlers)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
