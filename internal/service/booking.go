package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	email       EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	email EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		email:       email,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, actor *domain.User, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return booking, nil
	case domain.RoleRenter:
		if booking.RenterID != actor.ID {
			return nil, ErrForbidden
		}
		return booking, nil
	case domain.RoleOwner:
		vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.OwnerID != actor.ID {
			return nil, ErrForbidden
		}
		return booking, nil
	}
	return nil, ErrForbidden
}

func (s *bookingService) CancelBooking(ctx context.Context, actor *domain.User, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && booking.RenterID != actor.ID {
		return nil, ErrForbidden
	}
	if !booking.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return nil, ErrBookingNotActive
	}
	if booking.Started(time.Now()) {
		return nil, ErrBookingStarted
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.BookingStatusActive, domain.BookingStatusCancelled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotActive
		}
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled

	// Cancellation never refunds by itself. Refunds start with an
	// explicit admin action against the payment record.
	s.notifyCancellation(booking)
	return booking, nil
}

// CompleteBooking is the manual admin variant of the nightly sweep for
// a single booking whose end date has passed.
func (s *bookingService) CompleteBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(domain.BookingStatusCompleted) {
		return nil, ErrBookingNotActive
	}
	if !booking.Expired(time.Now()) {
		return nil, ErrBookingNotEnded
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.BookingStatusActive, domain.BookingStatusCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotActive
		}
		return nil, err
	}
	booking.Status = domain.BookingStatusCompleted
	return booking, nil
}

func (s *bookingService) notifyCancellation(booking *domain.Booking) {
	renter, err := s.userRepo.GetByID(context.Background(), booking.RenterID)
	if err != nil {
		logger.Error("failed to load renter for cancellation email", "renter_id", booking.RenterID, "error", err)
		return
	}
	vehicle, err := s.vehicleRepo.GetByID(context.Background(), booking.VehicleID)
	if err != nil {
		logger.Error("failed to load vehicle for cancellation email", "vehicle_id", booking.VehicleID, "error", err)
		return
	}
	notifyAsync("booking cancellation", func(ctx context.Context) error {
		return s.email.SendBookingCancellation(ctx, renter.Email, renter.Name, vehicle.Make+" "+vehicle.Model)
	})
}

func (s *bookingService) ListMyBookings(ctx context.Context, renterID int32, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, filter)
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, ownerID int32, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, filter)
}

func (s *bookingService) ListAllBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookingRepo.ListAll(ctx, filter)
}

func (s *bookingService) CompleteExpiredBookings(ctx context.Context) ([]domain.Booking, error) {
	today := time.Now().Format("2006-01-02")
	completed, err := s.bookingRepo.CompleteExpired(ctx, today)
	if err != nil {
		return nil, err
	}

	for i := range completed {
		booking := completed[i]
		renter, err := s.userRepo.GetByID(ctx, booking.RenterID)
		if err != nil {
			logger.Error("failed to load renter for completion email", "renter_id", booking.RenterID, "error", err)
			continue
		}
		vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
		if err != nil {
			logger.Error("failed to load vehicle for completion email", "vehicle_id", booking.VehicleID, "error", err)
			continue
		}
		vehicleName := vehicle.Make + " " + vehicle.Model
		notifyAsync("booking completion", func(ctx context.Context) error {
			if err := s.email.SendBookingCompletion(ctx, renter.Email, renter.Name, vehicleName); err != nil {
				return err
			}
			return s.email.SendReviewReminder(ctx, renter.Email, renter.Name, vehicleName)
		})
	}
	return completed, nil
}
