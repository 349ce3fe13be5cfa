package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	Type          string          `json:"type" binding:"required,oneof=devis contrat"`
	ReservationID *int64          `json:"reservation_id"`
	ClientID      int64           `json:"client_id" binding:"required"`
	VehicleID     int64           `json:"vehicle_id" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
	Discount      decimal.Decimal `json:"discount"`
	ExtraFees     decimal.Decimal `json:"extra_fees"`
	Deposit       decimal.Decimal `json:"deposit"`
	Notes         string          `json:"notes"`
}

// GenerateFromReservationRequest turns a held reservation into a draft
// contract, snapshotting its terms.
type GenerateFromReservationRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	Type          string `json:"type" binding:"omitempty,oneof=devis contrat"`
}

type UpdateContractRequest struct {
	Type      string          `json:"type" binding:"required,oneof=devis contrat"`
	ClientID  int64           `json:"client_id" binding:"required"`
	VehicleID int64           `json:"vehicle_id" binding:"required"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
	Discount  decimal.Decimal `json:"discount"`
	ExtraFees decimal.Decimal `json:"extra_fees"`
	Deposit   decimal.Decimal `json:"deposit"`
	Notes     string          `json:"notes"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Mileage *int64 `json:"mileage"`
}
