package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	// ContractDevis is a quote: a non-binding draft the client may sign later.
	ContractDevis ContractType = "devis"
	// ContractContrat is the binding rental agreement.
	ContractContrat ContractType = "contrat"
)

type ContractStatus string

const (
	ContractDraft            ContractStatus = "draft"
	ContractPendingSignature ContractStatus = "pending_signature"
	ContractSigned           ContractStatus = "signed"
	ContractActive           ContractStatus = "active"
	ContractCompleted        ContractStatus = "completed"
	ContractCancelled        ContractStatus = "cancelled"
)

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractDraft:            {ContractPendingSignature, ContractCancelled},
	ContractPendingSignature: {ContractSigned, ContractCancelled},
	ContractSigned:           {ContractActive, ContractCancelled},
	ContractActive:           {ContractCompleted},
}

func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	for _, allowed := range contractTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ContractStatus) IsTerminal() bool {
	return len(contractTransitions[s]) == 0
}

type Contract struct {
	ID            int64           `json:"id"`
	Type          ContractType    `json:"type"`
	ReservationID *int64          `json:"reservation_id,omitempty"`
	ClientID      int64           `json:"client_id" validate:"required"`
	VehicleID     int64           `json:"vehicle_id" validate:"required"`
	StartDate     time.Time       `json:"start_date" validate:"required"`
	EndDate       time.Time       `json:"end_date" validate:"required"`
	DailyRate     decimal.Decimal `json:"daily_rate" gorm:"type:decimal(12,2)"`
	TotalDays     int             `json:"total_days"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(12,2)"`
	ExtraFees     decimal.Decimal `json:"extra_fees" gorm:"type:decimal(12,2)"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	Deposit       decimal.Decimal `json:"deposit" gorm:"type:decimal(12,2)"`
	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"type:decimal(12,2)"`
	StartMileage  *int64          `json:"start_mileage,omitempty"`
	EndMileage    *int64          `json:"end_mileage,omitempty"`
	Status        ContractStatus  `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Client  *Client  `json:"client,omitempty"`
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// ComputeTotal recalculates TotalAmount from the rate fields. The result
// never goes below zero, whatever the discount.
func (c *Contract) ComputeTotal() {
	total := c.DailyRate.Mul(decimal.NewFromInt(int64(c.TotalDays))).
		Sub(c.Discount).
		Add(c.ExtraFees)
	if total.IsNegative() {
		total = decimal.Zero
	}
	c.TotalAmount = total
}

// CanBeEdited returns true while the contract terms are still negotiable.
func (c *Contract) CanBeEdited() bool {
	return c.Status == ContractDraft || c.Status == ContractPendingSignature
}

type ContractFilter struct {
	ClientID  *int64
	VehicleID *int64
	Status    *ContractStatus
	Type      *ContractType
}
