package maintenance

import (
	"context"

	"gorent/internal/domain"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceRecord) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRecord, error)
	List(ctx context.Context, vehicleID *int64, status *domain.MaintenanceStatus) ([]domain.MaintenanceRecord, error)
	Update(ctx context.Context, m *domain.MaintenanceRecord) error
	Delete(ctx context.Context, id int64) error
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus, mileage *int64) error
}
