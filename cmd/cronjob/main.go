package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"wheelshare-backend/internal/config"
	"wheelshare-backend/internal/gateway/razorpay"
	"wheelshare-backend/internal/jobs"
	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/repository/postgres"
	"wheelshare-backend/internal/scheduler"
	"wheelshare-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "path to configuration file")
	runOnce := flag.String("run-once", "", "run one job and exit: complete-expired-bookings, expire-pending-payments or all")
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

	store := postgres.NewStore(db)
	emailService := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	gateway := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.BaseURL)

	bookingService := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		emailService,
	)
	paymentService := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		store,
		gateway,
		cfg.Razorpay.KeyID,
		emailService,
	)

	runner := jobs.NewJobRunner(&jobs.Services{
		Bookings: bookingService,
		Payments: paymentService,
	}, cfg)

	if *runOnce != "" {
		runJobOnce(runner, *runOnce)
		return
	}

	sched := scheduler.NewScheduler(runner)
	sched.Start()
	logger.Info("job scheduler running", "pid", os.Getpid())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	sched.Stop()
}

func runJobOnce(runner *jobs.JobRunner, name string) {
	switch name {
	case "complete-expired-bookings":
		runner.CompleteExpiredBookings()
	case "expire-pending-payments":
		runner.ExpirePendingPayments()
	case "all":
		runner.RunAll()
	default:
		fmt.Fprintf(os.Stderr, "unknown job %q; available: complete-expired-bookings, expire-pending-payments, all\n", name)
		os.Exit(1)
	}
}
