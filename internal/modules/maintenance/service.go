package maintenance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type Service struct {
	records  MaintenanceRepository
	vehicles VehicleRepository
}

func NewService(records MaintenanceRepository, vehicles VehicleRepository) *Service {
	return &Service{records: records, vehicles: vehicles}
}

// Create opens a maintenance record. Work that starts immediately, or is
// flagged urgent, pulls the vehicle off the rentable fleet.
func (s *Service) Create(ctx context.Context, req MaintenanceRequest) (*domain.MaintenanceRecord, error) {
	if req.PartsCost.IsNegative() || req.LaborCost.IsNegative() {
		return nil, ErrValidation
	}

	if _, err := s.vehicles.GetByID(ctx, req.VehicleID); err != nil {
		return nil, notFoundOr(err)
	}

	status := domain.MaintenanceTodo
	if req.Status != "" {
		status = domain.MaintenanceStatus(req.Status)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	m := &domain.MaintenanceRecord{
		VehicleID:   req.VehicleID,
		Type:        req.Type,
		Description: req.Description,
		Garage:      req.Garage,
		Date:        date,
		PartsCost:   req.PartsCost,
		LaborCost:   req.LaborCost,
		Status:      status,
	}
	m.ComputeTotalCost()

	if err := s.records.Create(ctx, m); err != nil {
		return nil, err
	}

	if status == domain.MaintenanceInProgress || status == domain.MaintenanceUrgent {
		if err := s.vehicles.UpdateStatus(ctx, req.VehicleID, domain.VehicleMaintenance, nil); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRecord, error) {
	m, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, vehicleID *int64, status *domain.MaintenanceStatus) ([]domain.MaintenanceRecord, error) {
	return s.records.List(ctx, vehicleID, status)
}

// Update rewrites the record and keeps the vehicle in step: completing
// the work hands the vehicle back to the fleet, reopening it takes the
// vehicle out again.
func (s *Service) Update(ctx context.Context, id int64, req MaintenanceRequest) (*domain.MaintenanceRecord, error) {
	if req.PartsCost.IsNegative() || req.LaborCost.IsNegative() {
		return nil, ErrValidation
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasOpen := m.IsOpen()

	m.VehicleID = req.VehicleID
	m.Type = req.Type
	m.Description = req.Description
	m.Garage = req.Garage
	if !req.Date.IsZero() {
		m.Date = req.Date
	}
	m.PartsCost = req.PartsCost
	m.LaborCost = req.LaborCost
	if req.Status != "" {
		m.Status = domain.MaintenanceStatus(req.Status)
	}
	m.ComputeTotalCost()

	if err := s.records.Update(ctx, m); err != nil {
		return nil, notFoundOr(err)
	}

	switch {
	case wasOpen && !m.IsOpen():
		if err := s.vehicles.UpdateStatus(ctx, m.VehicleID, domain.VehicleAvailable, nil); err != nil {
			return nil, err
		}
	case m.Status == domain.MaintenanceInProgress || m.Status == domain.MaintenanceUrgent:
		if err := s.vehicles.UpdateStatus(ctx, m.VehicleID, domain.VehicleMaintenance, nil); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
