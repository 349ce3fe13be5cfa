package reports

import (
	"context"
	"time"

	"gorent/internal/domain"
)

type ContractReader interface {
	ListInPeriod(ctx context.Context, from, to time.Time, statuses []domain.ContractStatus) ([]domain.Contract, error)
}

type InvoiceReader interface {
	ListIssuedInPeriod(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
}

type MaintenanceReader interface {
	ListInPeriod(ctx context.Context, from, to time.Time) ([]domain.MaintenanceRecord, error)
}

type VehicleLister interface {
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
}
