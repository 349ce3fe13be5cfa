package invoices

import (
	"context"
	"time"

	"gorent/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error)
	UpdatePayment(ctx context.Context, inv *domain.Invoice) error
	UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error
	CountForYear(ctx context.Context, year int) (int64, error)
	MarkOverdue(ctx context.Context, now time.Time) ([]int64, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type ContractReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
}

type NotificationSender interface {
	NotifyInvoiceOverdue(ctx context.Context, invoiceID int64) error
}
