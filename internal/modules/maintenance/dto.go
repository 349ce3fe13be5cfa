package maintenance

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceRequest struct {
	VehicleID   int64           `json:"vehicle_id" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Description string          `json:"description"`
	Garage      string          `json:"garage"`
	Date        time.Time       `json:"date"`
	PartsCost   decimal.Decimal `json:"parts_cost"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	Status      string          `json:"status" binding:"omitempty,oneof=todo in_progress completed urgent"`
}
