package contracts

import (
	"context"

	"gorent/internal/domain"
)

type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	List(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	// ApplyTransition writes the contract status and the vehicle sync
	// atomically; a vehicle-side failure rolls the contract back.
	ApplyTransition(ctx context.Context, contractID, vehicleID int64, status domain.ContractStatus, startMileage, endMileage *int64, vehicleStatus *domain.VehicleStatus) error
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// ReservationCloser reconciles the reservation a contract was generated
// from once the rental actually starts.
type ReservationCloser interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CompleteForContract(ctx context.Context, reservationID int64) error
}

type NotificationSender interface {
	NotifyContractStatus(ctx context.Context, c *domain.Contract, status domain.ContractStatus) error
}
