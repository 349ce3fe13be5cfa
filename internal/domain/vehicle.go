package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleAvailable    VehicleStatus = "available"
	VehicleRented       VehicleStatus = "rented"
	VehicleMaintenance  VehicleStatus = "maintenance"
	VehicleReserved     VehicleStatus = "reserved"
	VehicleOutOfService VehicleStatus = "out_of_service"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

type Vehicle struct {
	ID           int64           `json:"id"`
	Brand        string          `json:"brand" validate:"required"`
	Model        string          `json:"model" validate:"required"`
	Category     string          `json:"category"`
	Year         int             `json:"year,omitempty"`
	LicensePlate string          `json:"license_plate"`
	Transmission Transmission    `json:"transmission"`
	Fuel         FuelType        `json:"fuel"`
	Seats        int             `json:"seats,omitempty"`
	DailyRate    decimal.Decimal `json:"daily_rate" gorm:"type:decimal(12,2)" validate:"required"`
	Mileage      int64           `json:"mileage"`
	Status       VehicleStatus   `json:"status"`
	PhotoURL     string          `json:"photo_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsBookable returns true if new reservations may target this vehicle.
// Rented and reserved vehicles stay bookable for non-overlapping ranges;
// only vehicles pulled from the fleet are excluded.
func (v *Vehicle) IsBookable() bool {
	return v.Status != VehicleOutOfService && v.Status != VehicleMaintenance
}

type VehicleFilter struct {
	Category     *string
	Transmission *Transmission
	Fuel         *FuelType
	Status       *VehicleStatus
}
