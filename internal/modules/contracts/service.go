package contracts

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"gorent/internal/domain"
	"gorent/internal/modules/reservations"
)

type Service struct {
	contracts ContractRepository
	vehicles  VehicleReader
	clients   ClientReader
	resv      ReservationCloser
	notifs    NotificationSender
}

func NewService(
	contracts ContractRepository,
	vehicles VehicleReader,
	clients ClientReader,
	resv ReservationCloser,
	notifs NotificationSender,
) *Service {
	return &Service{
		contracts: contracts,
		vehicles:  vehicles,
		clients:   clients,
		resv:      resv,
		notifs:    notifs,
	}
}

// Create opens a draft. The daily rate is snapshotted from the vehicle at
// creation time so later fleet repricing never changes a signed agreement.
func (s *Service) Create(ctx context.Context, req CreateContractRequest) (*domain.Contract, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidRange
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !client.IsEligible() {
		return nil, ErrClientIneligible
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	c := &domain.Contract{
		Type:          domain.ContractType(req.Type),
		ReservationID: req.ReservationID,
		ClientID:      req.ClientID,
		VehicleID:     req.VehicleID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DailyRate:     vehicle.DailyRate,
		TotalDays:     reservations.RentalDays(req.StartDate, req.EndDate),
		Discount:      req.Discount,
		ExtraFees:     req.ExtraFees,
		Deposit:       req.Deposit,
		Status:        domain.ContractDraft,
		Notes:         req.Notes,
	}
	c.ComputeTotal()

	if err := s.contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GenerateFromReservation drafts a contract carrying the reservation's
// dates, parties and pricing terms. The reservation itself is only
// reconciled later, when the contract goes active.
func (s *Service) GenerateFromReservation(ctx context.Context, req GenerateFromReservationRequest) (*domain.Contract, error) {
	res, err := s.resv.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservations.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.Status == domain.ReservationCancelled {
		return nil, ErrValidation
	}

	ctype := domain.ContractContrat
	if req.Type != "" {
		ctype = domain.ContractType(req.Type)
	}

	return s.Create(ctx, CreateContractRequest{
		Type:          string(ctype),
		ReservationID: &res.ID,
		ClientID:      res.ClientID,
		VehicleID:     res.VehicleID,
		StartDate:     res.StartDate,
		EndDate:       res.EndDate,
		Notes:         res.Notes,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	return s.contracts.List(ctx, filter)
}

// Update rewrites the negotiable terms, rerunning every creation guard.
// Once the contract is signed the terms are frozen.
func (s *Service) Update(ctx context.Context, id int64, req UpdateContractRequest) (*domain.Contract, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanBeEdited() {
		return nil, ErrNotEditable
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidRange
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !client.IsEligible() {
		return nil, ErrClientIneligible
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	c.Type = domain.ContractType(req.Type)
	c.ClientID = req.ClientID
	c.VehicleID = req.VehicleID
	c.StartDate = req.StartDate
	c.EndDate = req.EndDate
	c.DailyRate = vehicle.DailyRate
	c.TotalDays = reservations.RentalDays(req.StartDate, req.EndDate)
	c.Discount = req.Discount
	c.ExtraFees = req.ExtraFees
	c.Deposit = req.Deposit
	c.Notes = req.Notes
	c.ComputeTotal()

	if err := s.contracts.Update(ctx, c); err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

// UpdateStatus applies one legal step of the contract state machine and
// keeps the fleet in sync with it: going active parks the vehicle as
// rented and records the departure mileage, completing returns it to
// available with the return mileage. Both writes land in one storage
// transaction. Cancelling before activation never touches the vehicle.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next domain.ContractStatus, mileage *int64) (*domain.Contract, error) {
	switch next {
	case domain.ContractDraft, domain.ContractPendingSignature, domain.ContractSigned,
		domain.ContractActive, domain.ContractCompleted, domain.ContractCancelled:
	default:
		return nil, ErrValidation
	}

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	var startMileage, endMileage *int64
	switch next {
	case domain.ContractActive:
		if mileage == nil {
			return nil, ErrMileageRequired
		}
		startMileage = mileage
	case domain.ContractCompleted:
		if mileage == nil {
			return nil, ErrMileageRequired
		}
		endMileage = mileage
	}

	var vehicleStatus *domain.VehicleStatus
	switch next {
	case domain.ContractActive:
		st := domain.VehicleRented
		vehicleStatus = &st
	case domain.ContractCompleted:
		st := domain.VehicleAvailable
		vehicleStatus = &st
	}

	if err := s.contracts.ApplyTransition(ctx, id, c.VehicleID, next, startMileage, endMileage, vehicleStatus); err != nil {
		return nil, notFoundOr(err)
	}

	if next == domain.ContractActive && c.ReservationID != nil && s.resv != nil {
		if err := s.resv.CompleteForContract(ctx, *c.ReservationID); err != nil {
			log.Printf("contracts: completing reservation %d for contract %d: %v",
				*c.ReservationID, c.ID, err)
		}
	}

	c.Status = next
	c.StartMileage = firstNonNil(startMileage, c.StartMileage)
	c.EndMileage = firstNonNil(endMileage, c.EndMileage)

	if s.notifs != nil {
		_ = s.notifs.NotifyContractStatus(ctx, c, next)
	}
	return c, nil
}

func firstNonNil(a, b *int64) *int64 {
	if a != nil {
		return a
	}
	return b
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
