package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gorent/internal/domain"
	"gorent/internal/repository"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	if res != nil && args.Error(0) == nil {
		res.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time, excludeID *int64) (bool, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
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

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyReservationCreated(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyReservationStatus(ctx context.Context, res *domain.Reservation, status domain.ReservationStatus) error {
	args := m.Called(ctx, res, status)
	return args.Error(0)
}

func testVehicle(rate int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:        1,
		Brand:     "Dacia",
		Model:     "Logan",
		DailyRate: decimal.NewFromInt(rate),
		Status:    domain.VehicleAvailable,
	}
}

func testClient(status domain.ClientStatus) *domain.Client {
	return &domain.Client{ID: 7, FullName: "Karim Alami", Status: status}
}

func newTestService(res *MockReservationRepository, veh *MockVehicleReader, cli *MockClientReader) *Service {
	return NewService(res, veh, cli, nil)
}

func TestService_Create_Success(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockVeh := new(MockVehicleReader)
	mockCli := new(MockClientReader)

	start := date(2024, 6, 5)
	end := date(2024, 6, 7)

	mockCli.On("GetByID", mock.Anything, int64(7)).Return(testClient(domain.ClientNormal), nil)
	mockVeh.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(250), nil)
	mockRes.On("CheckAvailability", mock.Anything, int64(1), start, end, (*int64)(nil)).Return(true, nil)
	mockRes.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockRes, mockVeh, mockCli)

	res, err := service.Create(context.Background(), CreateReservationRequest{
		VehicleID:      1,
		ClientID:       7,
		StartDate:      start,
		EndDate:        end,
		PickupLocation: "Casablanca Aéroport",
		ReturnLocation: "Casablanca Centre",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.True(t, res.TotalPrice.Equal(decimal.NewFromInt(500)), "2 days at 250 must price 500, got %s", res.TotalPrice)
	mockRes.AssertExpectations(t)
}

func TestService_Create_InvalidRange(t *testing.T) {
	service := newTestService(new(MockReservationRepository), new(MockVehicleReader), new(MockClientReader))

	_, err := service.Create(context.Background(), CreateReservationRequest{
		VehicleID: 1,
		ClientID:  7,
		StartDate: date(2024, 6, 7),
		EndDate:   date(2024, 6, 5),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	// equal dates are rejected too: the interval must be non-empty
	_, err = service.Create(context.Background(), CreateReservationRequest{
		VehicleID: 1,
		ClientID:  7,
		StartDate: date(2024, 6, 5),
		EndDate:   date(2024, 6, 5),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_Create_OverlappingDatesUnavailable(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockVeh := new(MockVehicleReader)
	mockCli := new(MockClientReader)

	// reservation A holds 2024-06-01 -> 2024-06-05; request B 06-04 -> 06-06
	start := date(2024, 6, 4)
	end := date(2024, 6, 6)

	mockCli.On("GetByID", mock.Anything, int64(7)).Return(testClient(domain.ClientNormal), nil)
	mockVeh.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(250), nil)
	mockRes.On("CheckAvailability", mock.Anything, int64(1), start, end, (*int64)(nil)).Return(false, nil)

	service := newTestService(mockRes, mockVeh, mockCli)

	_, err := service.Create(context.Background(), CreateReservationRequest{
		VehicleID: 1,
		ClientID:  7,
		StartDate: start,
		EndDate:   end,
	})

	assert.ErrorIs(t, err, ErrUnavailable)
	mockRes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_BlockedClientRejected(t *testing.T) {
	for _, status := range []domain.ClientStatus{domain.ClientBlocked, domain.ClientBlacklist} {
		mockRes := new(MockReservationRepository)
		mockVeh := new(MockVehicleReader)
		mockCli := new(MockClientReader)

		mockCli.On("GetByID", mock.Anything, int64(7)).Return(testClient(status), nil)

		service := newTestService(mockRes, mockVeh, mockCli)

		_, err := service.Create(context.Background(), CreateReservationRequest{
			VehicleID: 1,
			ClientID:  7,
			StartDate: date(2024, 6, 5),
			EndDate:   date(2024, 6, 7),
		})

		assert.ErrorIs(t, err, ErrClientIneligible, "status %s must be ineligible", status)
		mockRes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestService_Create_RiskyClientStillAccepted(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockVeh := new(MockVehicleReader)
	mockCli := new(MockClientReader)

	start := date(2024, 6, 5)
	end := date(2024, 6, 7)

	mockCli.On("GetByID", mock.Anything, int64(7)).Return(testClient(domain.ClientRisky), nil)
	mockVeh.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(250), nil)
	mockRes.On("CheckAvailability", mock.Anything, int64(1), start, end, (*int64)(nil)).Return(true, nil)
	mockRes.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockRes, mockVeh, mockCli)

	_, err := service.Create(context.Background(), CreateReservationRequest{
		VehicleID: 1, ClientID: 7, StartDate: start, EndDate: end,
	})
	assert.NoError(t, err)
}

func TestService_Create_ConcurrencyConflict(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockVeh := new(MockVehicleReader)
	mockCli := new(MockClientReader)

	start := date(2024, 6, 5)
	end := date(2024, 6, 7)

	mockCli.On("GetByID", mock.Anything, int64(7)).Return(testClient(domain.ClientNormal), nil)
	mockVeh.On("GetByID", mock.Anything, int64(1)).Return(testVehicle(250), nil)
	// the in-process check passes, then the storage constraint fires
	mockRes.On("CheckAvailability", mock.Anything, int64(1), start, end, (*int64)(nil)).Return(true, nil)
	mockRes.On("Create", mock.Anything, mock.Anything).Return(repository.ErrReservationConflict)

	service := newTestService(mockRes, mockVeh, mockCli)

	_, err := service.Create(context.Background(), CreateReservationRequest{
		VehicleID: 1, ClientID: 7, StartDate: start, EndDate: end,
	})

	assert.ErrorIs(t, err, ErrConcurrencyConflict)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestService_Create_UnknownClient(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockVeh := new(MockVehicleReader)
	mockCli := new(MockClientReader)

	mockCli.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockRes, mockVeh, mockCli)

	_, err := service.Create(context.Background(), CreateReservationRequest{
		VehicleID: 1, ClientID: 7,
		StartDate: date(2024, 6, 5), EndDate: date(2024, 6, 7),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateStatus_LegalChain(t *testing.T) {
	steps := []struct {
		from domain.ReservationStatus
		to   domain.ReservationStatus
	}{
		{domain.ReservationPending, domain.ReservationConfirmed},
		{domain.ReservationConfirmed, domain.ReservationOngoing},
		{domain.ReservationOngoing, domain.ReservationCompleted},
		{domain.ReservationPending, domain.ReservationCancelled},
		{domain.ReservationConfirmed, domain.ReservationCancelled},
	}

	for _, step := range steps {
		mockRes := new(MockReservationRepository)
		mockRes.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reservation{ID: 5, Status: step.from}, nil)
		mockRes.On("UpdateStatus", mock.Anything, int64(5), step.to).Return(nil)

		service := newTestService(mockRes, new(MockVehicleReader), new(MockClientReader))

		res, err := service.UpdateStatus(context.Background(), 5, step.to)
		assert.NoError(t, err, "%s -> %s must be legal", step.from, step.to)
		assert.Equal(t, step.to, res.Status)
	}
}

func TestService_UpdateStatus_IllegalTransitions(t *testing.T) {
	steps := []struct {
		from domain.ReservationStatus
		to   domain.ReservationStatus
	}{
		{domain.ReservationPending, domain.ReservationOngoing},
		{domain.ReservationPending, domain.ReservationCompleted},
		{domain.ReservationOngoing, domain.ReservationCancelled},
		{domain.ReservationCompleted, domain.ReservationOngoing},
		{domain.ReservationCancelled, domain.ReservationConfirmed},
		{domain.ReservationCompleted, domain.ReservationPending},
	}

	for _, step := range steps {
		mockRes := new(MockReservationRepository)
		mockRes.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reservation{ID: 5, Status: step.from}, nil)

		service := newTestService(mockRes, new(MockVehicleReader), new(MockClientReader))

		_, err := service.UpdateStatus(context.Background(), 5, step.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", step.from, step.to)
		mockRes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestService_Delete_OnlyPending(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockRes.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reservation{ID: 5, Status: domain.ReservationConfirmed}, nil)

	service := newTestService(mockRes, new(MockVehicleReader), new(MockClientReader))

	err := service.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotDeletable)
	mockRes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_CompleteForContract(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockRes.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reservation{ID: 5, Status: domain.ReservationConfirmed}, nil)
	mockRes.On("UpdateStatus", mock.Anything, int64(5), domain.ReservationCompleted).Return(nil)

	service := newTestService(mockRes, new(MockVehicleReader), new(MockClientReader))

	assert.NoError(t, service.CompleteForContract(context.Background(), 5))
	mockRes.AssertExpectations(t)
}

func TestService_CompleteForContract_CancelledLeftAlone(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockRes.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reservation{ID: 5, Status: domain.ReservationCancelled}, nil)

	service := newTestService(mockRes, new(MockVehicleReader), new(MockClientReader))

	assert.NoError(t, service.CompleteForContract(context.Background(), 5))
	mockRes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
