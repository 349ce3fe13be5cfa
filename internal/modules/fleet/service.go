package fleet

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type Service struct {
	vehicles VehicleRepository
	resv     AvailabilityChecker
}

func NewService(vehicles VehicleRepository, resv AvailabilityChecker) *Service {
	return &Service{vehicles: vehicles, resv: resv}
}

func (s *Service) Create(ctx context.Context, req VehicleRequest) (*domain.Vehicle, error) {
	if req.DailyRate.IsNegative() {
		return nil, ErrValidation
	}

	v := &domain.Vehicle{
		Brand:        req.Brand,
		Model:        req.Model,
		Category:     req.Category,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Transmission: domain.Transmission(req.Transmission),
		Fuel:         domain.FuelType(req.Fuel),
		Seats:        req.Seats,
		DailyRate:    req.DailyRate,
		Mileage:      req.Mileage,
		Status:       domain.VehicleAvailable,
		PhotoURL:     req.PhotoURL,
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id int64, req VehicleRequest) (*domain.Vehicle, error) {
	if req.DailyRate.IsNegative() {
		return nil, ErrValidation
	}

	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Brand = req.Brand
	v.Model = req.Model
	v.Category = req.Category
	v.Year = req.Year
	v.LicensePlate = req.LicensePlate
	v.Transmission = domain.Transmission(req.Transmission)
	v.Fuel = domain.FuelType(req.Fuel)
	v.Seats = req.Seats
	v.DailyRate = req.DailyRate
	v.Mileage = req.Mileage
	v.PhotoURL = req.PhotoURL

	if err := s.vehicles.Update(ctx, v); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus, mileage *int64) (*domain.Vehicle, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.vehicles.UpdateStatus(ctx, id, status, mileage); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	v.Status = status
	if mileage != nil {
		v.Mileage = *mileage
	}
	return v, nil
}

// Delete removes a vehicle from the fleet. Refused while anything is
// still booked on its calendar, today or in the future.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	now := time.Now()
	free, err := s.resv.CheckAvailability(ctx, id, now, now.AddDate(10, 0, 0), nil)
	if err != nil {
		return err
	}
	if !free {
		return ErrInUse
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
