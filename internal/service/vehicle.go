package service

import (
	"context"
	"database/sql"
	"errors"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/gateway/imagekit"
	"wheelshare-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
	uploads     *imagekit.Signer
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, bookingRepo repository.BookingRepository, uploads *imagekit.Signer) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		uploads:     uploads,
	}
}

func (s *vehicleService) AddVehicle(ctx context.Context, ownerID int32, vehicle *domain.Vehicle) error {
	vehicle.OwnerID = ownerID
	// Every new listing waits for moderation.
	vehicle.Status = domain.VehicleStatusPending
	vehicle.Availability = true
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return vehicle, err
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID int32, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	existing, err := s.vehicleRepo.GetByID(ctx, vehicle.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	existing.Make = vehicle.Make
	existing.Model = vehicle.Model
	existing.Year = vehicle.Year
	existing.VehicleType = vehicle.VehicleType
	existing.Category = vehicle.Category
	existing.Location = vehicle.Location
	existing.PricePerDayCents = vehicle.PricePerDayCents
	existing.Availability = vehicle.Availability
	existing.Description = vehicle.Description
	if len(vehicle.Images) > 0 {
		existing.Images = vehicle.Images
	}
	// Edited listings go back through moderation.
	existing.Status = domain.VehicleStatusPending

	if err := s.vehicleRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, ownerID int32, id int32) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if vehicle.OwnerID != ownerID {
		return ErrForbidden
	}

	active, err := s.bookingRepo.ListBookedDates(ctx, id)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return ErrVehicleHasBooking
	}

	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) SearchVehicles(ctx context.Context, filter domain.VehicleSearchFilter) ([]domain.Vehicle, error) {
	return s.vehicleRepo.SearchApproved(ctx, filter)
}

func (s *vehicleService) ListMyVehicles(ctx context.Context, ownerID int32) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByOwner(ctx, ownerID)
}

func (s *vehicleService) ListPendingVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByStatus(ctx, domain.VehicleStatusPending)
}

func (s *vehicleService) ModerateVehicle(ctx context.Context, id int32, approve bool) (*domain.Vehicle, error) {
	status := domain.VehicleStatusRejected
	if approve {
		status = domain.VehicleStatusApproved
	}

	if err := s.vehicleRepo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) BookedDates(ctx context.Context, vehicleID int32) ([]domain.Booking, error) {
	if _, err := s.GetVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListBookedDates(ctx, vehicleID)
}

func (s *vehicleService) UploadAuthParams() imagekit.AuthParams {
	return s.uploads.AuthenticationParameters()
}
