package invoices

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gorent/internal/domain"
)

type Service struct {
	invoices  InvoiceRepository
	clients   ClientReader
	contracts ContractReader
	notifs    NotificationSender
	now       func() time.Time
}

func NewService(
	invoices InvoiceRepository,
	clients ClientReader,
	contracts ContractReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		invoices:  invoices,
		clients:   clients,
		contracts: contracts,
		notifs:    notifs,
		now:       time.Now,
	}
}

// Create issues an invoice. The ref is sequential per calendar year; the
// client name and address are snapshotted so later edits to the client
// record never rewrite an issued document. Every money field is derived
// server-side from the submitted items.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range req.Items {
		if it.Quantity.LessThanOrEqual(decimal.Zero) || it.UnitPrice.IsNegative() {
			return nil, ErrValidation
		}
	}
	if req.TaxRate.IsNegative() {
		return nil, ErrValidation
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.ContractID != nil {
		if _, err := s.contracts.GetByID(ctx, *req.ContractID); err != nil {
			return nil, notFoundOr(err)
		}
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	due := req.DueDate
	if due.IsZero() {
		due = date.AddDate(0, 0, 30)
	}
	if due.Before(date) {
		return nil, ErrValidation
	}

	inv := &domain.Invoice{
		Date:          date,
		DueDate:       due,
		ContractID:    req.ContractID,
		ClientID:      req.ClientID,
		ClientName:    client.FullName,
		ClientAddress: client.Address,
		TaxRate:       req.TaxRate,
		Status:        domain.InvoicePending,
	}
	for i, it := range req.Items {
		inv.Items = append(inv.Items, domain.InvoiceItem{
			Position:    i + 1,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	inv.ComputeTotals()
	inv.RefreshStatus(s.now())

	count, err := s.invoices.CountForYear(ctx, date.Year())
	if err != nil {
		return nil, err
	}
	inv.Ref = fmt.Sprintf("INV-%d-%04d", date.Year(), count+1)

	if err := s.invoices.Create(ctx, inv); err != nil {
		if !isDuplicateRef(err) {
			return nil, err
		}
		// two invoices issued in the same instant raced for the sequence
		// number; fall back to a collision-proof ref
		inv.Ref = fmt.Sprintf("INV-%d-%s", date.Year(), uuid.NewString()[:8])
		if err := s.invoices.Create(ctx, inv); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	return s.invoices.List(ctx, filter)
}

// RecordPayment adds a payment and rederives the status. Paying a
// cancelled invoice is refused; the cancellation is a staff decision
// money cannot undo.
func (s *Service) RecordPayment(ctx context.Context, id int64, req RecordPaymentRequest) (*domain.Invoice, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPayment
	}

	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceCancelled {
		return nil, ErrCancelled
	}

	inv.PaidAmount = inv.PaidAmount.Add(req.Amount)
	inv.Balance = inv.TotalAmount.Sub(inv.PaidAmount)
	inv.RefreshStatus(s.now())

	if err := s.invoices.UpdatePayment(ctx, inv); err != nil {
		return nil, notFoundOr(err)
	}
	return inv, nil
}

// Cancel is the explicit staff override. It sticks: payments recorded
// afterwards are refused and the sweep skips cancelled invoices.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.UpdateStatus(ctx, id, domain.InvoiceCancelled); err != nil {
		return nil, notFoundOr(err)
	}
	inv.Status = domain.InvoiceCancelled
	return inv, nil
}

// SweepOverdue flips pending invoices past their due date to overdue and
// notifies the back office. Runs on a schedule; safe to run twice.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	ids, err := s.invoices.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if s.notifs != nil {
			if err := s.notifs.NotifyInvoiceOverdue(ctx, id); err != nil {
				log.Printf("invoices: overdue notification failed id=%d err=%v", id, err)
			}
		}
	}
	return len(ids), nil
}

func isDuplicateRef(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
