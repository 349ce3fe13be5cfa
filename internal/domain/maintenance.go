package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceTodo       MaintenanceStatus = "todo"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceUrgent     MaintenanceStatus = "urgent"
)

type MaintenanceRecord struct {
	ID          int64             `json:"id"`
	VehicleID   int64             `json:"vehicle_id" validate:"required"`
	Type        string            `json:"type" validate:"required"`
	Description string            `json:"description,omitempty"`
	Garage      string            `json:"garage,omitempty"`
	Date        time.Time         `json:"date"`
	PartsCost   decimal.Decimal   `json:"parts_cost" gorm:"type:decimal(12,2)"`
	LaborCost   decimal.Decimal   `json:"labor_cost" gorm:"type:decimal(12,2)"`
	TotalCost   decimal.Decimal   `json:"total_cost" gorm:"type:decimal(12,2)"`
	Status      MaintenanceStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// ComputeTotalCost sums the cost components.
func (m *MaintenanceRecord) ComputeTotalCost() {
	m.TotalCost = m.PartsCost.Add(m.LaborCost)
}

// IsOpen returns true while the work is not finished.
func (m *MaintenanceRecord) IsOpen() bool {
	return m.Status != MaintenanceCompleted
}
