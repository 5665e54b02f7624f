package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/gateway/razorpay"
	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/metrics"
	"wheelshare-backend/internal/pricing"
	"wheelshare-backend/internal/repository"
)

// Payments created but never verified are failed after this window.
const checkoutWindow = 10 * time.Minute

const defaultCurrency = "INR"

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	tx          repository.TxRunner
	gateway     razorpay.Client
	gatewayKey  string
	email       EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	tx repository.TxRunner,
	gateway razorpay.Client,
	gatewayKey string,
	email EmailService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		tx:          tx,
		gateway:     gateway,
		gatewayKey:  gatewayKey,
		email:       email,
	}
}

func (s *paymentService) PrepareBooking(ctx context.Context, renterID, vehicleID int32, startDate, endDate string) (*BookingPreview, error) {
	start, err := pricing.ParseDate(startDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	today, _ := pricing.ParseDate(time.Now().Format("2006-01-02"))
	if start.Before(today) {
		return nil, ErrStartDateInPast
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !vehicle.Bookable() {
		return nil, ErrVehicleNotBookable
	}
	if vehicle.OwnerID == renterID {
		return nil, ErrOwnBooking
	}

	days, totalCents, err := pricing.RentalCost(startDate, endDate, vehicle.PricePerDayCents)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	conflict, err := s.bookingRepo.FindOverlapping(ctx, vehicleID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrDatesUnavailable
	}

	return &BookingPreview{
		Vehicle:     vehicle,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        days,
		AmountCents: totalCents,
		Currency:    defaultCurrency,
	}, nil
}

func (s *paymentService) CreateOrder(ctx context.Context, renterID, vehicleID int32, startDate, endDate string) (*CheckoutOrder, error) {
	preview, err := s.PrepareBooking(ctx, renterID, vehicleID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	receipt := uuid.NewString()
	order, err := s.gateway.CreateOrder(ctx, preview.AmountCents, preview.Currency, receipt)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		RenterID:         renterID,
		VehicleID:        vehicleID,
		BookingStartDate: startDate,
		BookingEndDate:   endDate,
		AmountCents:      preview.AmountCents,
		Currency:         preview.Currency,
		RazorpayOrderID:  order.ID,
		Status:           domain.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &CheckoutOrder{
		OrderID:     order.ID,
		AmountCents: preview.AmountCents,
		Currency:    preview.Currency,
		KeyID:       s.gatewayKey,
		PaymentID:   payment.ID,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, renterID int32, orderID, gatewayPaymentID, signature string) (*domain.Booking, error) {
	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if payment.RenterID != renterID {
		return nil, ErrForbidden
	}
	if !payment.Status.CanTransitionTo(domain.PaymentStatusSuccess) {
		return nil, ErrPaymentNotPending
	}

	if !s.gateway.VerifySignature(orderID, gatewayPaymentID, signature) {
		if err := s.paymentRepo.MarkFailedByOrderID(ctx, orderID); err != nil {
			logger.Error("failed to mark payment failed", "order_id", orderID, "error", err)
		}
		metrics.IncPaymentSettled(string(domain.PaymentStatusFailed))
		return nil, ErrSignatureMismatch
	}

	booking := &domain.Booking{
		RenterID:  renterID,
		VehicleID: payment.VehicleID,
		StartDate: payment.BookingStartDate,
		EndDate:   payment.BookingEndDate,
		Status:    domain.BookingStatusActive,
	}

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		// Serialize against concurrent verifications for the same
		// vehicle, then re-check availability with the lock held.
		if err := s.bookingRepo.LockVehicleTx(ctx, tx, payment.VehicleID); err != nil {
			return err
		}
		conflict, err := s.bookingRepo.FindOverlappingTx(ctx, tx, payment.VehicleID, booking.StartDate, booking.EndDate)
		if err != nil {
			return err
		}
		if conflict != nil {
			return ErrDatesUnavailable
		}

		if err := s.paymentRepo.MarkSucceededTx(ctx, tx, orderID, gatewayPaymentID, signature); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPaymentNotPending
			}
			return err
		}
		if err := s.bookingRepo.CreateTx(ctx, tx, booking); err != nil {
			return err
		}
		return s.paymentRepo.LinkBookingTx(ctx, tx, orderID, booking.ID)
	})
	if err != nil {
		if errors.Is(err, ErrDatesUnavailable) {
			if markErr := s.paymentRepo.MarkFailedByOrderID(ctx, orderID); markErr != nil {
				logger.Error("failed to mark payment failed", "order_id", orderID, "error", markErr)
			}
			metrics.IncPaymentSettled(string(domain.PaymentStatusFailed))
		}
		return nil, err
	}

	metrics.IncPaymentSettled(string(domain.PaymentStatusSuccess))
	s.sendConfirmation(payment, booking)
	return booking, nil
}

func (s *paymentService) sendConfirmation(payment *domain.Payment, booking *domain.Booking) {
	renter, err := s.userRepo.GetByID(context.Background(), payment.RenterID)
	if err != nil {
		logger.Error("failed to load renter for confirmation email", "renter_id", payment.RenterID, "error", err)
		return
	}
	vehicle, err := s.vehicleRepo.GetByID(context.Background(), payment.VehicleID)
	if err != nil {
		logger.Error("failed to load vehicle for confirmation email", "vehicle_id", payment.VehicleID, "error", err)
		return
	}
	notifyAsync("booking confirmation", func(ctx context.Context) error {
		return s.email.SendBookingConfirmation(ctx, renter.Email, renter.Name,
			vehicle.Make+" "+vehicle.Model, booking.StartDate, booking.EndDate, payment.AmountCents)
	})
}

func (s *paymentService) GetPayment(ctx context.Context, actor *domain.User, id int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return payment, nil
	case domain.RoleRenter:
		if payment.RenterID != actor.ID {
			return nil, ErrForbidden
		}
		return payment, nil
	case domain.RoleOwner:
		vehicle, err := s.vehicleRepo.GetByID(ctx, payment.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.OwnerID != actor.ID {
			return nil, ErrForbidden
		}
		return payment, nil
	}
	return nil, ErrForbidden
}

func (s *paymentService) ListMyPayments(ctx context.Context, renterID int32, filter domain.PaymentFilter) ([]domain.Payment, error) {
	return s.paymentRepo.ListByRenter(ctx, renterID, filter)
}

func (s *paymentService) ListOwnerPayments(ctx context.Context, ownerID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByOwner(ctx, ownerID)
}

func (s *paymentService) ListAllPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	return s.paymentRepo.ListAll(ctx, filter)
}

func (s *paymentService) RequestRefund(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentStatusRefundPending) {
		return nil, ErrNotRefundable
	}

	if err := s.paymentRepo.RequestRefund(ctx, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotRefundable
		}
		return nil, err
	}
	payment.Status = domain.PaymentStatusRefundPending
	return payment, nil
}

func (s *paymentService) ProcessRefund(ctx context.Context, adminID, paymentID int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentStatusRefunded) || payment.RazorpayPaymentID == nil {
		return nil, ErrNotRefundable
	}

	refund, err := s.gateway.RefundPayment(ctx, *payment.RazorpayPaymentID, payment.AmountCents)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.MarkRefunded(ctx, paymentID, refund.ID, adminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotRefundable
		}
		return nil, err
	}

	if renter, lookupErr := s.userRepo.GetByID(ctx, payment.RenterID); lookupErr == nil {
		amount := payment.AmountCents
		notifyAsync("refund processed", func(ctx context.Context) error {
			return s.email.SendRefundProcessed(ctx, renter.Email, renter.Name, amount)
		})
	}

	return s.paymentRepo.GetByID(ctx, paymentID)
}

func (s *paymentService) ExpireStalePayments(ctx context.Context) (int64, error) {
	return s.paymentRepo.ExpireStale(ctx, time.Now().Add(-checkoutWindow))
}
