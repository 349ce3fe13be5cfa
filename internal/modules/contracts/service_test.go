package contracts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gorent/internal/domain"
)

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractRepository) Update(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) ApplyTransition(ctx context.Context, contractID, vehicleID int64, status domain.ContractStatus, startMileage, endMileage *int64, vehicleStatus *domain.VehicleStatus) error {
	args := m.Called(ctx, contractID, vehicleID, status, startMileage, endMileage, vehicleStatus)
	return args.Error(0)
}

type MockVehicleReader struct {
	mock.Mock
}

func (m *MockVehicleReader) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

type MockClientReader struct {
	mock.Mock
}

func (m *MockClientReader) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

type MockReservationCloser struct {
	mock.Mock
}

func (m *MockReservationCloser) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationCloser) CompleteForContract(ctx context.Context, reservationID int64) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyContractStatus(ctx context.Context, c *domain.Contract, status domain.ContractStatus) error {
	args := m.Called(ctx, c, status)
	return args.Error(0)
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *MockContractRepository, *MockVehicleReader, *MockClientReader, *MockReservationCloser, *MockNotificationSender) {
	contracts := new(MockContractRepository)
	vehicles := new(MockVehicleReader)
	clients := new(MockClientReader)
	resv := new(MockReservationCloser)
	notifs := new(MockNotificationSender)
	return NewService(contracts, vehicles, clients, resv, notifs), contracts, vehicles, clients, resv, notifs
}

func TestCreateContract_Success(t *testing.T) {
	svc, contracts, vehicles, clients, _, _ := newTestService()

	clients.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Client{ID: 7, Status: domain.ClientNormal}, nil)
	vehicles.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Vehicle{ID: 3, Status: domain.VehicleAvailable, DailyRate: decimal.NewFromInt(350)}, nil)
	contracts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contract")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Contract).ID = 11
		}).
		Return(nil)

	c, err := svc.Create(context.Background(), CreateContractRequest{
		Type:      "contrat",
		ClientID:  7,
		VehicleID: 3,
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 3, 8),
		Discount:  decimal.NewFromInt(100),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ContractDraft, c.Status)
	assert.Equal(t, 7, c.TotalDays)
	assert.True(t, c.DailyRate.Equal(decimal.NewFromInt(350)))
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(2350)), "got %s", c.TotalAmount)
	contracts.AssertExpectations(t)
}

func TestCreateContract_InvalidRange(t *testing.T) {
	svc, contracts, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateContractRequest{
		Type:      "contrat",
		ClientID:  7,
		VehicleID: 3,
		StartDate: date(2024, 3, 8),
		EndDate:   date(2024, 3, 1),
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
	contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateContract_BlockedClient(t *testing.T) {
	svc, contracts, _, clients, _, _ := newTestService()

	clients.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Client{ID: 7, Status: domain.ClientBlocked}, nil)

	_, err := svc.Create(context.Background(), CreateContractRequest{
		Type:      "devis",
		ClientID:  7,
		VehicleID: 3,
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 3, 4),
	})

	assert.ErrorIs(t, err, ErrClientIneligible)
	contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateFromReservation_SnapshotsTerms(t *testing.T) {
	svc, contracts, vehicles, clients, resv, _ := newTestService()

	resv.On("GetByID", mock.Anything, int64(42)).
		Return(&domain.Reservation{
			ID:        42,
			VehicleID: 3,
			ClientID:  7,
			StartDate: date(2024, 6, 5),
			EndDate:   date(2024, 6, 7),
			Status:    domain.ReservationConfirmed,
		}, nil)
	clients.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Client{ID: 7, Status: domain.ClientNormal}, nil)
	vehicles.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Vehicle{ID: 3, DailyRate: decimal.NewFromInt(250)}, nil)
	contracts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contract")).Return(nil)

	c, err := svc.GenerateFromReservation(context.Background(), GenerateFromReservationRequest{ReservationID: 42})

	assert.NoError(t, err)
	if assert.NotNil(t, c.ReservationID) {
		assert.Equal(t, int64(42), *c.ReservationID)
	}
	assert.Equal(t, domain.ContractContrat, c.Type)
	assert.Equal(t, 2, c.TotalDays)
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(500)), "got %s", c.TotalAmount)
}

func TestGenerateFromReservation_CancelledRejected(t *testing.T) {
	svc, contracts, _, _, resv, _ := newTestService()

	resv.On("GetByID", mock.Anything, int64(42)).
		Return(&domain.Reservation{ID: 42, Status: domain.ReservationCancelled}, nil)

	_, err := svc.GenerateFromReservation(context.Background(), GenerateFromReservationRequest{ReservationID: 42})

	assert.ErrorIs(t, err, ErrValidation)
	contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateContract_RecomputesTotal(t *testing.T) {
	svc, contracts, vehicles, clients, _, _ := newTestService()

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, Status: domain.ContractDraft}, nil)
	clients.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Client{ID: 7, Status: domain.ClientVIP}, nil)
	vehicles.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Vehicle{ID: 3, DailyRate: decimal.NewFromInt(200)}, nil)
	contracts.On("Update", mock.Anything, mock.AnythingOfType("*domain.Contract")).Return(nil)

	c, err := svc.Update(context.Background(), 11, UpdateContractRequest{
		Type:      "contrat",
		ClientID:  7,
		VehicleID: 3,
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 4),
		ExtraFees: decimal.NewFromInt(30),
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, c.TotalDays)
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(630)), "got %s", c.TotalAmount)
}

func TestUpdateContract_FrozenOnceSigned(t *testing.T) {
	svc, contracts, _, _, _, _ := newTestService()

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, Status: domain.ContractSigned}, nil)

	_, err := svc.Update(context.Background(), 11, UpdateContractRequest{
		Type:      "contrat",
		ClientID:  7,
		VehicleID: 3,
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 4),
	})

	assert.ErrorIs(t, err, ErrNotEditable)
	contracts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatus_SigningChain(t *testing.T) {
	svc, contracts, _, _, _, notifs := newTestService()
	notifs.On("NotifyContractStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, Status: domain.ContractDraft}, nil).Once()
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractPendingSignature,
		(*int64)(nil), (*int64)(nil), (*domain.VehicleStatus)(nil)).
		Return(nil).Once()

	c, err := svc.UpdateStatus(context.Background(), 11, domain.ContractPendingSignature, nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.ContractPendingSignature, c.Status)

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, Status: domain.ContractPendingSignature}, nil).Once()
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractSigned,
		(*int64)(nil), (*int64)(nil), (*domain.VehicleStatus)(nil)).
		Return(nil).Once()

	c, err = svc.UpdateStatus(context.Background(), 11, domain.ContractSigned, nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.ContractSigned, c.Status)
}

func TestUpdateStatus_ActivationSyncsFleet(t *testing.T) {
	svc, contracts, _, _, resv, notifs := newTestService()
	notifs.On("NotifyContractStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resID := int64(42)
	mileage := int64(52000)
	rented := domain.VehicleRented

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, ReservationID: &resID, Status: domain.ContractSigned}, nil)
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractActive,
		&mileage, (*int64)(nil), &rented).
		Return(nil)
	resv.On("CompleteForContract", mock.Anything, int64(42)).Return(nil)

	c, err := svc.UpdateStatus(context.Background(), 11, domain.ContractActive, &mileage)

	assert.NoError(t, err)
	assert.Equal(t, domain.ContractActive, c.Status)
	if assert.NotNil(t, c.StartMileage) {
		assert.Equal(t, mileage, *c.StartMileage)
	}
	contracts.AssertExpectations(t)
	resv.AssertExpectations(t)
}

func TestUpdateStatus_ActivationRolledBackOnStorageFailure(t *testing.T) {
	svc, contracts, _, _, resv, notifs := newTestService()

	mileage := int64(52000)
	rented := domain.VehicleRented
	resID := int64(42)

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, ReservationID: &resID, Status: domain.ContractSigned}, nil)
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractActive,
		&mileage, (*int64)(nil), &rented).
		Return(errors.New("serialization failure"))

	_, err := svc.UpdateStatus(context.Background(), 11, domain.ContractActive, &mileage)

	assert.Error(t, err)
	// nothing downstream fires when the transition did not commit
	resv.AssertNotCalled(t, "CompleteForContract", mock.Anything, mock.Anything)
	notifs.AssertNotCalled(t, "NotifyContractStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ReconciliationFailureDoesNotUndoActivation(t *testing.T) {
	svc, contracts, _, _, resv, notifs := newTestService()
	notifs.On("NotifyContractStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resID := int64(42)
	mileage := int64(52000)
	rented := domain.VehicleRented

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, ReservationID: &resID, Status: domain.ContractSigned}, nil)
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractActive,
		&mileage, (*int64)(nil), &rented).
		Return(nil)
	resv.On("CompleteForContract", mock.Anything, int64(42)).
		Return(errors.New("reservation store down"))

	c, err := svc.UpdateStatus(context.Background(), 11, domain.ContractActive, &mileage)

	assert.NoError(t, err)
	assert.Equal(t, domain.ContractActive, c.Status)
	resv.AssertExpectations(t)
}

func TestUpdateStatus_ActivationNeedsMileage(t *testing.T) {
	svc, contracts, _, _, _, _ := newTestService()

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, Status: domain.ContractSigned}, nil)

	_, err := svc.UpdateStatus(context.Background(), 11, domain.ContractActive, nil)

	assert.ErrorIs(t, err, ErrMileageRequired)
	contracts.AssertNotCalled(t, "ApplyTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_CompletionReturnsVehicle(t *testing.T) {
	svc, contracts, _, _, _, notifs := newTestService()
	notifs.On("NotifyContractStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mileage := int64(52740)
	available := domain.VehicleAvailable

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, Status: domain.ContractActive}, nil)
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractCompleted,
		(*int64)(nil), &mileage, &available).
		Return(nil)

	c, err := svc.UpdateStatus(context.Background(), 11, domain.ContractCompleted, &mileage)

	assert.NoError(t, err)
	if assert.NotNil(t, c.EndMileage) {
		assert.Equal(t, mileage, *c.EndMileage)
	}
	contracts.AssertExpectations(t)
}

func TestUpdateStatus_CancelBeforeActivationLeavesVehicleAlone(t *testing.T) {
	svc, contracts, _, _, _, notifs := newTestService()
	notifs.On("NotifyContractStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	contracts.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Contract{ID: 11, VehicleID: 3, Status: domain.ContractSigned}, nil)
	contracts.On("ApplyTransition", mock.Anything, int64(11), int64(3), domain.ContractCancelled,
		(*int64)(nil), (*int64)(nil), (*domain.VehicleStatus)(nil)).
		Return(nil)

	_, err := svc.UpdateStatus(context.Background(), 11, domain.ContractCancelled, nil)

	assert.NoError(t, err)
	contracts.AssertExpectations(t)
}

func TestUpdateStatus_IllegalTransitions(t *testing.T) {
	svc, contracts, _, _, _, _ := newTestService()

	cases := []struct {
		from domain.ContractStatus
		to   domain.ContractStatus
	}{
		{domain.ContractActive, domain.ContractCancelled},
		{domain.ContractCompleted, domain.ContractActive},
		{domain.ContractDraft, domain.ContractActive},
		{domain.ContractCancelled, domain.ContractDraft},
	}

	for _, tc := range cases {
		contracts.On("GetByID", mock.Anything, int64(11)).
			Return(&domain.Contract{ID: 11, Status: tc.from}, nil).Once()

		_, err := svc.UpdateStatus(context.Background(), 11, tc.to, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", tc.from, tc.to)
	}
	contracts.AssertNotCalled(t, "ApplyTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, contracts, _, _, _, _ := newTestService()

	contracts.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
