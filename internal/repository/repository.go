package repository

import (
	"context"
	"database/sql"
	"time"

	"wheelshare-backend/internal/domain"
)

// TxRunner executes a function inside a single database transaction,
// rolling back if the function returns an error.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	CountByRole(ctx context.Context) (*domain.UserCounts, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	SetStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Vehicle, error)
	ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error)
	SearchApproved(ctx context.Context, filter domain.VehicleSearchFilter) ([]domain.Vehicle, error)
	UpdateRatingStats(ctx context.Context, id int32, average float64, total int32) error
	Counts(ctx context.Context) (*domain.VehicleCounts, error)
	CountsByOwner(ctx context.Context, ownerID int32) (*domain.VehicleCounts, error)
}

type BookingRepository interface {
	// CreateTx inserts the booking inside the caller's transaction.
	CreateTx(ctx context.Context, tx *sql.Tx, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// UpdateStatus applies a guarded status transition: the row is only
	// updated while its current status equals from. Returns
	// sql.ErrNoRows when the guard does not match.
	UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus) error
	// FindOverlapping returns an ACTIVE booking on the vehicle whose
	// inclusive interval intersects [startDate,endDate], or nil.
	FindOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string) (*domain.Booking, error)
	FindOverlappingTx(ctx context.Context, tx *sql.Tx, vehicleID int32, startDate, endDate string) (*domain.Booking, error)
	// LockVehicleTx serializes booking creation per vehicle for the
	// duration of the transaction.
	LockVehicleTx(ctx context.Context, tx *sql.Tx, vehicleID int32) error
	ListByRenter(ctx context.Context, renterID int32, filter domain.BookingFilter) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int32, filter domain.BookingFilter) ([]domain.Booking, error)
	ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	// ListBookedDates returns start/end pairs of ACTIVE bookings for the
	// availability calendar.
	ListBookedDates(ctx context.Context, vehicleID int32) ([]domain.Booking, error)
	// CompleteExpired flips ACTIVE bookings whose end date is before
	// today to COMPLETED and returns the affected bookings.
	CompleteExpired(ctx context.Context, today string) ([]domain.Booking, error)
	Counts(ctx context.Context) (*domain.BookingCounts, error)
	CountsByOwner(ctx context.Context, ownerID int32) (*domain.BookingCounts, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	// MarkFailedByOrderID settles a CREATED payment as FAILED.
	MarkFailedByOrderID(ctx context.Context, orderID string) error
	// MarkSucceededTx settles a CREATED payment as SUCCESS with the
	// captured gateway ids. Returns sql.ErrNoRows when the payment is
	// not in CREATED state, so a payment settles exactly once.
	MarkSucceededTx(ctx context.Context, tx *sql.Tx, orderID, gatewayPaymentID, signature string) error
	LinkBookingTx(ctx context.Context, tx *sql.Tx, orderID string, bookingID int32) error
	// RequestRefund transitions SUCCESS -> REFUND_PENDING.
	RequestRefund(ctx context.Context, id int32) error
	// MarkRefunded transitions REFUND_PENDING -> REFUNDED with audit fields.
	MarkRefunded(ctx context.Context, id int32, refundID string, adminID int32) error
	ListByRenter(ctx context.Context, renterID int32, filter domain.PaymentFilter) ([]domain.Payment, error)
	// ListByOwner returns succeeded payments against the owner's vehicles.
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Payment, error)
	ListAll(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	// ExpireStale fails CREATED payments older than the cutoff and
	// returns the number of rows updated.
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int32) (*domain.Review, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error)
	ListByVehicle(ctx context.Context, vehicleID int32, includeHidden bool) ([]domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	SetHidden(ctx context.Context, id int32, hidden bool) error
	// RatingStats returns the average rating and count of visible
	// reviews for a vehicle.
	RatingStats(ctx context.Context, vehicleID int32) (float64, int32, error)
	OwnerRatingStats(ctx context.Context, ownerID int32) (float64, int64, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id int32) (*domain.Inquiry, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Inquiry, error)
	ListAll(ctx context.Context, status string) ([]domain.Inquiry, error)
	Update(ctx context.Context, inquiry *domain.Inquiry) error
}
