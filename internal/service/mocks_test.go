package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/gateway/razorpay"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) CountByRole(ctx context.Context) (*domain.UserCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCounts), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) SetStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVehicleRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) SearchApproved(ctx context.Context, filter domain.VehicleSearchFilter) ([]domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) UpdateRatingStats(ctx context.Context, id int32, average float64, total int32) error {
	args := m.Called(ctx, id, average, total)
	return args.Error(0)
}
func (m *MockVehicleRepo) Counts(ctx context.Context) (*domain.VehicleCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleCounts), args.Error(1)
}
func (m *MockVehicleRepo) CountsByOwner(ctx context.Context, ownerID int32) (*domain.VehicleCounts, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleCounts), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, booking *domain.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockBookingRepo) FindOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string) (*domain.Booking, error) {
	args := m.Called(ctx, vehicleID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) FindOverlappingTx(ctx context.Context, tx *sql.Tx, vehicleID int32, startDate, endDate string) (*domain.Booking, error) {
	args := m.Called(ctx, tx, vehicleID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) LockVehicleTx(ctx context.Context, tx *sql.Tx, vehicleID int32) error {
	args := m.Called(ctx, tx, vehicleID)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int32, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int32, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListBookedDates(ctx context.Context, vehicleID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CompleteExpired(ctx context.Context, today string) ([]domain.Booking, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Counts(ctx context.Context) (*domain.BookingCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingCounts), args.Error(1)
}
func (m *MockBookingRepo) CountsByOwner(ctx context.Context, ownerID int32) (*domain.BookingCounts, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingCounts), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkFailedByOrderID(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
func (m *MockPaymentRepo) MarkSucceededTx(ctx context.Context, tx *sql.Tx, orderID, gatewayPaymentID, signature string) error {
	args := m.Called(ctx, tx, orderID, gatewayPaymentID, signature)
	return args.Error(0)
}
func (m *MockPaymentRepo) LinkBookingTx(ctx context.Context, tx *sql.Tx, orderID string, bookingID int32) error {
	args := m.Called(ctx, tx, orderID, bookingID)
	return args.Error(0)
}
func (m *MockPaymentRepo) RequestRefund(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) MarkRefunded(ctx context.Context, id int32, refundID string, adminID int32) error {
	args := m.Called(ctx, id, refundID, adminID)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByRenter(ctx context.Context, renterID int32, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, renterID, filter)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListAll(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByVehicle(ctx context.Context, vehicleID int32, includeHidden bool) ([]domain.Review, error) {
	args := m.Called(ctx, vehicleID, includeHidden)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) SetHidden(ctx context.Context, id int32, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}
func (m *MockReviewRepo) RatingStats(ctx context.Context, vehicleID int32) (float64, int32, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}
func (m *MockReviewRepo) OwnerRatingStats(ctx context.Context, ownerID int32) (float64, int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockTxRunner runs the transactional closure with a nil handle so
// repository mocks can assert on the calls made inside it.
type MockTxRunner struct {
	mock.Mock
}

func (m *MockTxRunner) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	m.Called(ctx)
	return fn(nil)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (*razorpay.Order, error) {
	args := m.Called(ctx, amountCents, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Order), args.Error(1)
}
func (m *MockGateway) RefundPayment(ctx context.Context, paymentID string, amountCents int64) (*razorpay.Refund, error) {
	args := m.Called(ctx, paymentID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Refund), args.Error(1)
}
func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendBookingConfirmation(ctx context.Context, email, name, vehicleName, startDate, endDate string, amountCents int64) error {
	args := m.Called(ctx, email, name, vehicleName, startDate, endDate, amountCents)
	return args.Error(0)
}
func (m *MockEmail) SendBookingCancellation(ctx context.Context, email, name, vehicleName string) error {
	args := m.Called(ctx, email, name, vehicleName)
	return args.Error(0)
}
func (m *MockEmail) SendRefundProcessed(ctx context.Context, email, name string, amountCents int64) error {
	args := m.Called(ctx, email, name, amountCents)
	return args.Error(0)
}
func (m *MockEmail) SendBookingCompletion(ctx context.Context, email, name, vehicleName string) error {
	args := m.Called(ctx, email, name, vehicleName)
	return args.Error(0)
}
func (m *MockEmail) SendReviewReminder(ctx context.Context, email, name, vehicleName string) error {
	args := m.Called(ctx, email, name, vehicleName)
	return args.Error(0)
}
func (m *MockEmail) SendInquiryReply(ctx context.Context, email, name, subject, reply string) error {
	args := m.Called(ctx, email, name, subject, reply)
	return args.Error(0)
}
