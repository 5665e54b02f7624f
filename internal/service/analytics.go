package service

import (
	"context"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"
)

type analyticsService struct {
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
	reviewRepo  repository.ReviewRepository
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	bookingRepo repository.BookingRepository,
	reviewRepo repository.ReviewRepository,
) AnalyticsService {
	return &analyticsService{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *analyticsService) AdminOverview(ctx context.Context) (*domain.AdminOverview, error) {
	users, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.AdminOverview{
		Users:    *users,
		Vehicles: *vehicles,
		Bookings: *bookings,
	}, nil
}

func (s *analyticsService) OwnerOverview(ctx context.Context, ownerID int32) (*domain.OwnerOverview, error) {
	vehicles, err := s.vehicleRepo.CountsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.CountsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	avg, total, err := s.reviewRepo.OwnerRatingStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &domain.OwnerOverview{
		Vehicles:      *vehicles,
		Bookings:      *bookings,
		AverageRating: avg,
		TotalReviews:  total,
	}, nil
}
