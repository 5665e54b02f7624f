package service

import (
	"context"
	"database/sql"
	"errors"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, vehicleRepo repository.VehicleRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
	}
}

func (s *reviewService) AddReview(ctx context.Context, renterID, bookingID int32, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, ErrForbidden
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	if _, err := s.reviewRepo.GetByBookingID(ctx, bookingID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	review := &domain.Review{
		VehicleID: booking.VehicleID,
		RenterID:  renterID,
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshRatingStats(ctx, booking.VehicleID)
	return review, nil
}

// refreshRatingStats recomputes the vehicle's denormalized rating
// columns from its visible reviews.
func (s *reviewService) refreshRatingStats(ctx context.Context, vehicleID int32) {
	avg, total, err := s.reviewRepo.RatingStats(ctx, vehicleID)
	if err != nil {
		logger.Error("failed to compute rating stats", "vehicle_id", vehicleID, "error", err)
		return
	}
	if err := s.vehicleRepo.UpdateRatingStats(ctx, vehicleID, avg, total); err != nil {
		logger.Error("failed to update rating stats", "vehicle_id", vehicleID, "error", err)
	}
}

func (s *reviewService) ListVehicleReviews(ctx context.Context, vehicleID int32) ([]domain.Review, error) {
	return s.reviewRepo.ListByVehicle(ctx, vehicleID, false)
}

func (s *reviewService) ListAllReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}

func (s *reviewService) SetReviewHidden(ctx context.Context, id int32, hidden bool) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.SetHidden(ctx, id, hidden); err != nil {
		return nil, err
	}
	review.IsHidden = hidden

	s.refreshRatingStats(ctx, review.VehicleID)
	return review, nil
}
