package fleet

import "github.com/shopspring/decimal"

type VehicleRequest struct {
	Brand        string          `json:"brand" binding:"required"`
	Model        string          `json:"model" binding:"required"`
	Category     string          `json:"category"`
	Year         int             `json:"year"`
	LicensePlate string          `json:"license_plate" binding:"required"`
	Transmission string          `json:"transmission" binding:"omitempty,oneof=manual automatic"`
	Fuel         string          `json:"fuel" binding:"omitempty,oneof=petrol diesel hybrid electric"`
	Seats        int             `json:"seats"`
	DailyRate    decimal.Decimal `json:"daily_rate" binding:"required"`
	Mileage      int64           `json:"mileage"`
	PhotoURL     string          `json:"photo_url"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=available rented maintenance reserved out_of_service"`
	Mileage *int64 `json:"mileage"`
}
