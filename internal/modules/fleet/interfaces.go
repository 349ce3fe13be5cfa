package fleet

import (
	"context"
	"time"

	"gorent/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus, mileage *int64) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityChecker guards deletion: a vehicle with bookings on the
// calendar cannot be removed from the fleet.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time, excludeID *int64) (bool, error)
}
