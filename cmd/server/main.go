package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "wheelshare-backend/internal/api/http"
	"wheelshare-backend/internal/config"
	"wheelshare-backend/internal/gateway/imagekit"
	"wheelshare-backend/internal/gateway/razorpay"
	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/repository/postgres"
	"wheelshare-backend/internal/security"
	"wheelshare-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	logger.Info("connected to database", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	gateway := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.BaseURL)
	uploadSigner := imagekit.NewSigner(cfg.ImageKit.PrivateKey)

	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, store.BookingRepository, uploadSigner)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookingRepository, store.VehicleRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		emailSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		store,
		gateway,
		cfg.Razorpay.KeyID,
		emailSvc,
	)
	inquirySvc := service.NewInquiryService(store.InquiryRepository, store.UserRepository, emailSvc)
	analyticsSvc := service.NewAnalyticsService(
		store.UserRepository,
		store.VehicleRepository,
		store.BookingRepository,
		store.ReviewRepository,
	)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:    tokenManager,
		Auth:      authSvc,
		Vehicles:  vehicleSvc,
		Bookings:  bookingSvc,
		Payments:  paymentSvc,
		Reviews:   reviewSvc,
		Inquiries: inquirySvc,
		Analytics: analyticsSvc,
	})

	logger.Info("http server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
