package service

import (
	"context"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/gateway/imagekit"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, password string) (*domain.User, error)
	// ListUsers is the admin directory, filterable by role and a
	// name/email search term.
	ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, ownerID int32, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, ownerID int32, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, ownerID int32, id int32) error
	SearchVehicles(ctx context.Context, filter domain.VehicleSearchFilter) ([]domain.Vehicle, error)
	ListMyVehicles(ctx context.Context, ownerID int32) ([]domain.Vehicle, error)
	ListPendingVehicles(ctx context.Context) ([]domain.Vehicle, error)
	ModerateVehicle(ctx context.Context, id int32, approve bool) (*domain.Vehicle, error)
	// BookedDates returns the active booking intervals for the
	// vehicle's availability calendar.
	BookedDates(ctx context.Context, vehicleID int32) ([]domain.Booking, error)
	UploadAuthParams() imagekit.AuthParams
}

// BookingPreview is the quote shown to the renter before checkout.
type BookingPreview struct {
	Vehicle     *domain.Vehicle `json:"vehicle"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Days        int64           `json:"days"`
	AmountCents int64           `json:"amount_cents"`
	Currency    string          `json:"currency"`
}

// CheckoutOrder is what the frontend needs to open the gateway widget.
type CheckoutOrder struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
	PaymentID   int32  `json:"payment_id"`
}

type PaymentService interface {
	// PrepareBooking validates dates and availability and quotes the
	// rental cost without touching the gateway.
	PrepareBooking(ctx context.Context, renterID, vehicleID int32, startDate, endDate string) (*BookingPreview, error)
	// CreateOrder re-runs the prepare checks, opens a gateway order and
	// records a CREATED payment.
	CreateOrder(ctx context.Context, renterID, vehicleID int32, startDate, endDate string) (*CheckoutOrder, error)
	// VerifyPayment checks the gateway signature and, in one
	// transaction, settles the payment and creates the booking.
	VerifyPayment(ctx context.Context, renterID int32, orderID, gatewayPaymentID, signature string) (*domain.Booking, error)
	GetPayment(ctx context.Context, actor *domain.User, id int32) (*domain.Payment, error)
	ListMyPayments(ctx context.Context, renterID int32, filter domain.PaymentFilter) ([]domain.Payment, error)
	ListOwnerPayments(ctx context.Context, ownerID int32) ([]domain.Payment, error)
	ListAllPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	// RequestRefund moves a SUCCESS payment to REFUND_PENDING. No money
	// moves until ProcessRefund.
	RequestRefund(ctx context.Context, paymentID int32) (*domain.Payment, error)
	// ProcessRefund executes a pending refund through the gateway and
	// marks the payment REFUNDED.
	ProcessRefund(ctx context.Context, adminID, paymentID int32) (*domain.Payment, error)
	// ExpireStalePayments fails CREATED payments that were never
	// settled within the checkout window.
	ExpireStalePayments(ctx context.Context) (int64, error)
}

type BookingService interface {
	GetBooking(ctx context.Context, actor *domain.User, id int32) (*domain.Booking, error)
	// CancelBooking cancels an ACTIVE booking before its start date.
	// Refunds are a separate admin action on the payment.
	CancelBooking(ctx context.Context, actor *domain.User, id int32) (*domain.Booking, error)
	// CompleteBooking is the admin form of the completion sweep for one
	// booking.
	CompleteBooking(ctx context.Context, id int32) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, renterID int32, filter domain.BookingFilter) ([]domain.Booking, error)
	ListOwnerBookings(ctx context.Context, ownerID int32, filter domain.BookingFilter) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	// CompleteExpiredBookings flips past-end ACTIVE bookings to
	// COMPLETED and emails the parties. Run by the scheduler.
	CompleteExpiredBookings(ctx context.Context) ([]domain.Booking, error)
}

type ReviewService interface {
	AddReview(ctx context.Context, renterID, bookingID int32, rating int32, comment string) (*domain.Review, error)
	ListVehicleReviews(ctx context.Context, vehicleID int32) ([]domain.Review, error)
	ListAllReviews(ctx context.Context) ([]domain.Review, error)
	SetReviewHidden(ctx context.Context, id int32, hidden bool) (*domain.Review, error)
}

type InquiryService interface {
	CreateInquiry(ctx context.Context, userID int32, subject, message string) (*domain.Inquiry, error)
	ListMyInquiries(ctx context.Context, userID int32) ([]domain.Inquiry, error)
	ListAllInquiries(ctx context.Context, status string) ([]domain.Inquiry, error)
	ReplyInquiry(ctx context.Context, id int32, reply string, status domain.InquiryStatus) (*domain.Inquiry, error)
}

type AnalyticsService interface {
	AdminOverview(ctx context.Context) (*domain.AdminOverview, error)
	OwnerOverview(ctx context.Context, ownerID int32) (*domain.OwnerOverview, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name, vehicleName, startDate, endDate string, amountCents int64) error
	SendBookingCancellation(ctx context.Context, email, name, vehicleName string) error
	SendRefundProcessed(ctx context.Context, email, name string, amountCents int64) error
	SendBookingCompletion(ctx context.Context, email, name, vehicleName string) error
	SendReviewReminder(ctx context.Context, email, name, vehicleName string) error
	SendInquiryReply(ctx context.Context, email, name, subject, reply string) error
}
