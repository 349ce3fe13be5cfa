package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gorent/internal/domain"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdatePayment(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
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

type MockContractReader struct {
	mock.Mock
}

func (m *MockContractReader) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyInvoiceOverdue(ctx context.Context, invoiceID int64) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func newTestService(now time.Time) (*Service, *MockInvoiceRepository, *MockClientReader, *MockContractReader, *MockNotificationSender) {
	invoices := new(MockInvoiceRepository)
	clients := new(MockClientReader)
	contracts := new(MockContractReader)
	notifs := new(MockNotificationSender)
	svc := NewService(invoices, clients, contracts, notifs)
	svc.now = func() time.Time { return now }
	return svc, invoices, clients, contracts, notifs
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func TestCreateInvoice_DerivesEveryTotal(t *testing.T) {
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	svc, invoices, clients, _, _ := newTestService(now)

	clients.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Client{ID: 7, FullName: "Amina Haddad", Address: "12 rue des Oliviers"}, nil)
	invoices.On("CountForYear", mock.Anything, 2024).Return(int64(17), nil)
	invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: 7,
		TaxRate:  dec("0.20"),
		Items: []InvoiceItemRequest{
			{Description: "Location 3 jours", Quantity: dec("3"), UnitPrice: dec("400")},
			{Description: "Siege enfant", Quantity: dec("1"), UnitPrice: dec("150")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "INV-2024-0018", inv.Ref)
	assert.Equal(t, "Amina Haddad", inv.ClientName)
	assert.Equal(t, "12 rue des Oliviers", inv.ClientAddress)
	assert.True(t, inv.SubTotal.Equal(dec("1350")), "sub total got %s", inv.SubTotal)
	assert.True(t, inv.TaxAmount.Equal(dec("270")), "tax got %s", inv.TaxAmount)
	assert.True(t, inv.TotalAmount.Equal(dec("1620")), "total got %s", inv.TotalAmount)
	assert.True(t, inv.Balance.Equal(dec("1620")))
	assert.Equal(t, domain.InvoicePending, inv.Status)
	assert.Equal(t, 1, inv.Items[0].Position)
	assert.Equal(t, 2, inv.Items[1].Position)
	assert.Equal(t, now.AddDate(0, 0, 30), inv.DueDate)
}

func TestCreateInvoice_NeedsItems(t *testing.T) {
	svc, invoices, _, _, _ := newTestService(time.Now())

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{ClientID: 7})

	assert.ErrorIs(t, err, ErrNoItems)
	invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvoice_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _, _, _ := newTestService(time.Now())

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: 7,
		Items:    []InvoiceItemRequest{{Description: "x", Quantity: dec("0"), UnitPrice: dec("10")}},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateInvoice_RefFallbackOnRace(t *testing.T) {
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	svc, invoices, clients, _, _ := newTestService(now)

	clients.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Client{ID: 7, FullName: "Amina Haddad"}, nil)
	invoices.On("CountForYear", mock.Anything, 2024).Return(int64(0), nil)
	invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Return(&pgconn.PgError{Code: "23505"}).Once()
	invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Return(nil).Once()

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: 7,
		Items:    []InvoiceItemRequest{{Description: "x", Quantity: dec("1"), UnitPrice: dec("10")}},
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "INV-2024-0001", inv.Ref)
	assert.Contains(t, inv.Ref, "INV-2024-")
	invoices.AssertNumberOfCalls(t, "Create", 2)
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	svc, invoices, _, _, _ := newTestService(now)

	inv := &domain.Invoice{
		ID:          5,
		TotalAmount: dec("1620"),
		PaidAmount:  decimal.Zero,
		Balance:     dec("1620"),
		DueDate:     now.AddDate(0, 0, 10),
		Status:      domain.InvoicePending,
	}
	invoices.On("GetByID", mock.Anything, int64(5)).Return(inv, nil)
	invoices.On("UpdatePayment", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	got, err := svc.RecordPayment(context.Background(), 5, RecordPaymentRequest{Amount: dec("620")})
	assert.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("1000")), "balance got %s", got.Balance)
	assert.Equal(t, domain.InvoicePending, got.Status)

	got, err = svc.RecordPayment(context.Background(), 5, RecordPaymentRequest{Amount: dec("1000")})
	assert.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, domain.InvoicePaid, got.Status)
}

func TestRecordPayment_OverdueUntilSettled(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	svc, invoices, _, _, _ := newTestService(now)

	inv := &domain.Invoice{
		ID:          5,
		TotalAmount: dec("1000"),
		Balance:     dec("1000"),
		DueDate:     now.AddDate(0, 0, -5),
		Status:      domain.InvoiceOverdue,
	}
	invoices.On("GetByID", mock.Anything, int64(5)).Return(inv, nil)
	invoices.On("UpdatePayment", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	got, err := svc.RecordPayment(context.Background(), 5, RecordPaymentRequest{Amount: dec("400")})
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceOverdue, got.Status, "partial payment after due date stays overdue")

	got, err = svc.RecordPayment(context.Background(), 5, RecordPaymentRequest{Amount: dec("600")})
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
}

func TestRecordPayment_CancelledIsFinal(t *testing.T) {
	svc, invoices, _, _, _ := newTestService(time.Now())

	invoices.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Invoice{ID: 5, Status: domain.InvoiceCancelled}, nil)

	_, err := svc.RecordPayment(context.Background(), 5, RecordPaymentRequest{Amount: dec("100")})

	assert.ErrorIs(t, err, ErrCancelled)
	invoices.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything)
}

func TestRecordPayment_RejectsNonPositive(t *testing.T) {
	svc, invoices, _, _, _ := newTestService(time.Now())

	_, err := svc.RecordPayment(context.Background(), 5, RecordPaymentRequest{Amount: dec("0")})

	assert.ErrorIs(t, err, ErrInvalidPayment)
	invoices.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSweepOverdue_NotifiesEachInvoice(t *testing.T) {
	now := time.Date(2024, 5, 20, 2, 0, 0, 0, time.UTC)
	svc, invoices, _, _, notifs := newTestService(now)

	invoices.On("MarkOverdue", mock.Anything, now).Return([]int64{3, 9}, nil)
	notifs.On("NotifyInvoiceOverdue", mock.Anything, int64(3)).Return(nil)
	notifs.On("NotifyInvoiceOverdue", mock.Anything, int64(9)).Return(nil)

	n, err := svc.SweepOverdue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	notifs.AssertExpectations(t)
}
