package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gorent/internal/domain"
	"gorent/internal/repository"
)

type Service struct {
	reservations ReservationRepository
	vehicles     VehicleReader
	clients      ClientReader
	notifs       NotificationSender
}

func NewService(
	reservations ReservationRepository,
	vehicles VehicleReader,
	clients ClientReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		reservations: reservations,
		vehicles:     vehicles,
		clients:      clients,
		notifs:       notifs,
	}
}

// Create runs the booking guards in order: range, client eligibility,
// vehicle, availability. Nothing is written when any guard fails. The
// storage overlap constraint closes the remaining check-then-act window;
// losing that race surfaces as ErrConcurrencyConflict, not ErrUnavailable,
// so the caller knows to re-search rather than retry blindly.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidRange
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !client.IsEligible() {
		return nil, ErrClientIneligible
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !vehicle.IsBookable() {
		return nil, ErrUnavailable
	}

	free, err := s.reservations.CheckAvailability(ctx, req.VehicleID, req.StartDate, req.EndDate, nil)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrUnavailable
	}

	quote := ComputePrice(vehicle.DailyRate, req.StartDate, req.EndDate, decimal.Zero)

	res := &domain.Reservation{
		VehicleID:      req.VehicleID,
		ClientID:       req.ClientID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
		TotalPrice:     quote.Total,
		Status:         domain.ReservationPending,
		Notes:          req.Notes,
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		if errors.Is(err, repository.ErrReservationConflict) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReservationCreated(ctx, res)
	}

	return res, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	return s.reservations.List(ctx, filter)
}

// CheckAvailability is the pure query behind the public availability
// endpoint; it never writes.
func (s *Service) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidRange
	}
	return s.reservations.CheckAvailability(ctx, vehicleID, start, end, nil)
}

// UpdateStatus applies one legal step of the reservation state machine.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next domain.ReservationStatus) (*domain.Reservation, error) {
	switch next {
	case domain.ReservationPending, domain.ReservationConfirmed, domain.ReservationOngoing,
		domain.ReservationCompleted, domain.ReservationCancelled:
	default:
		return nil, ErrValidation
	}

	res, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !res.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res.Status = next
	if s.notifs != nil {
		_ = s.notifs.NotifyReservationStatus(ctx, res, next)
	}

	return res, nil
}

// Delete removes a reservation that is still pending. Confirmed or later
// reservations are history and can only be cancelled.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !res.CanBeDeleted() {
		return ErrNotDeletable
	}
	return s.reservations.Delete(ctx, id)
}

// CompleteForContract reconciles a reservation whose contract went active:
// the reservation is fast-forwarded to completed so its range can no
// longer be double-booked through a second reservation path. Cancelled and
// already-completed reservations are left alone. The observed back office
// never did this automatically; here it is deliberate.
func (s *Service) CompleteForContract(ctx context.Context, reservationID int64) error {
	res, err := s.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.Status == domain.ReservationCancelled || res.Status == domain.ReservationCompleted {
		return nil
	}
	return s.reservations.UpdateStatus(ctx, reservationID, domain.ReservationCompleted)
}
