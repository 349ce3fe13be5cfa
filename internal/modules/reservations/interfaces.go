package reservations

import (
	"context"
	"time"

	"gorent/internal/domain"
)

// ReservationRepository is the storage the lifecycle manager depends on.
// The Create implementation must surface the storage-level overlap guard
// as repository.ErrReservationConflict.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time, excludeID *int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// NotificationSender fans booking events out to the back office. A nil
// sender is allowed; notification failures never fail the booking.
type NotificationSender interface {
	NotifyReservationCreated(ctx context.Context, res *domain.Reservation) error
	NotifyReservationStatus(ctx context.Context, res *domain.Reservation, status domain.ReservationStatus) error
}
