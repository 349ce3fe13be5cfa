package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationOngoing   ReservationStatus = "ongoing"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// reservationTransitions lists the legal status moves. Completed and
// cancelled are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationOngoing, ReservationCancelled},
	ReservationOngoing:   {ReservationCompleted},
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions.
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

type Reservation struct {
	ID             int64             `json:"id"`
	VehicleID      int64             `json:"vehicle_id" validate:"required"`
	ClientID       int64             `json:"client_id" validate:"required"`
	StartDate      time.Time         `json:"start_date" validate:"required"`
	EndDate        time.Time         `json:"end_date" validate:"required"`
	PickupLocation string            `json:"pickup_location,omitempty"`
	ReturnLocation string            `json:"return_location,omitempty"`
	TotalPrice     decimal.Decimal   `json:"total_price" gorm:"type:decimal(12,2)"`
	Status         ReservationStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	CancelledAt    *time.Time        `json:"cancelled_at,omitempty"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
	Client  *Client  `json:"client,omitempty"`
}

// BlocksAvailability returns true if this reservation occupies its date
// range for availability purposes. Only cancelled reservations free the
// range; completed ones keep their historical footprint but lie in the
// past by then anyway.
func (r *Reservation) BlocksAvailability() bool {
	return r.Status != ReservationCancelled
}

// CanBeDeleted returns true while the reservation is still a tentative
// request. Anything confirmed or later is history and must be kept.
func (r *Reservation) CanBeDeleted() bool {
	return r.Status == ReservationPending
}

// Overlaps applies the half-open interval test [start, end) against the
// reservation's own range. Back-to-back bookings (one ending exactly when
// the next starts) do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndDate) && end.After(r.StartDate)
}

type ReservationFilter struct {
	VehicleID *int64
	ClientID  *int64
	Status    *ReservationStatus
}
