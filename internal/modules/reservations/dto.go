package reservations

import "time"

type CreateReservationRequest struct {
	VehicleID      int64     `json:"vehicle_id" binding:"required"`
	ClientID       int64     `json:"client_id" binding:"required"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	PickupLocation string    `json:"pickup_location"`
	ReturnLocation string    `json:"return_location"`
	Notes          string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
