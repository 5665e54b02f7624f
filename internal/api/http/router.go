// Package http exposes the REST API over gorilla/mux.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/metrics"
	"wheelshare-backend/internal/security"
	"wheelshare-backend/internal/service"
)

type RouterDeps struct {
	Tokens    security.TokenManager
	Auth      service.AuthService
	Vehicles  service.VehicleService
	Bookings  service.BookingService
	Payments  service.PaymentService
	Reviews   service.ReviewService
	Inquiries service.InquiryService
	Analytics service.AnalyticsService
}

// NewRouter builds the full route table. Public routes cover signup,
// login and the vehicle catalog; everything else requires a bearer
// token, with owner and admin sections gated by role.
func NewRouter(deps RouterDeps) *mux.Router {
	metrics.Register()

	m := newMiddleware(deps.Tokens)

	authHandler := NewAuthHandler(deps.Auth)
	vehicleHandler := NewVehicleHandler(deps.Vehicles, deps.Reviews)
	bookingHandler := NewBookingHandler(deps.Bookings)
	paymentHandler := NewPaymentHandler(deps.Payments)
	reviewHandler := NewReviewHandler(deps.Reviews)
	inquiryHandler := NewInquiryHandler(deps.Inquiries)
	analyticsHandler := NewAnalyticsHandler(deps.Analytics)

	r := mux.NewRouter()
	r.Use(instrument)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", vehicleHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/booked-dates", vehicleHandler.BookedDates).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/reviews", vehicleHandler.Reviews).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(m.authenticate)
	authed.HandleFunc("/auth/profile", authHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/uploads/auth", vehicleHandler.UploadAuth).Methods(http.MethodGet)
	authed.HandleFunc("/inquiries", inquiryHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/inquiries/my", inquiryHandler.ListMine).Methods(http.MethodGet)

	// Renter routes
	renter := authed.NewRoute().Subrouter()
	renter.Use(m.requireRole(domain.RoleRenter))
	renter.HandleFunc("/payments/prepare", paymentHandler.Prepare).Methods(http.MethodPost)
	renter.HandleFunc("/payments/create-order", paymentHandler.CreateOrder).Methods(http.MethodPost)
	renter.HandleFunc("/payments/verify", paymentHandler.Verify).Methods(http.MethodPost)
	renter.HandleFunc("/payments/my", paymentHandler.ListMine).Methods(http.MethodGet)
	renter.HandleFunc("/bookings/my", bookingHandler.ListMine).Methods(http.MethodGet)
	renter.HandleFunc("/reviews", reviewHandler.Create).Methods(http.MethodPost)

	authed.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPut)
	authed.HandleFunc("/payments/{id:[0-9]+}", paymentHandler.Get).Methods(http.MethodGet)

	// Owner routes
	owner := authed.NewRoute().Subrouter()
	owner.Use(m.requireRole(domain.RoleOwner))
	owner.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	owner.HandleFunc("/vehicles/my", vehicleHandler.ListMine).Methods(http.MethodGet)
	owner.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)
	owner.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Delete).Methods(http.MethodDelete)
	owner.HandleFunc("/owner/bookings", bookingHandler.ListForOwner).Methods(http.MethodGet)
	owner.HandleFunc("/owner/earnings", paymentHandler.ListOwnerEarnings).Methods(http.MethodGet)
	owner.HandleFunc("/owner/overview", analyticsHandler.OwnerOverview).Methods(http.MethodGet)

	// Admin routes
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(m.requireRole(domain.RoleAdmin))
	admin.HandleFunc("/users", authHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}", authHandler.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles/pending", vehicleHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles/{id:[0-9]+}/moderate", vehicleHandler.Moderate).Methods(http.MethodPut)
	admin.HandleFunc("/bookings", bookingHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}/complete", bookingHandler.Complete).Methods(http.MethodPut)
	admin.HandleFunc("/payments", paymentHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{id:[0-9]+}/request-refund", paymentHandler.RequestRefund).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}/refund", paymentHandler.Refund).Methods(http.MethodPost)
	admin.HandleFunc("/reviews", reviewHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/{id:[0-9]+}/hidden", reviewHandler.SetHidden).Methods(http.MethodPut)
	admin.HandleFunc("/inquiries", inquiryHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/inquiries/{id:[0-9]+}/reply", inquiryHandler.Reply).Methods(http.MethodPut)
	admin.HandleFunc("/overview", analyticsHandler.AdminOverview).Methods(http.MethodGet)

	return r
}
