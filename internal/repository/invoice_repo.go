package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create persists the invoice and its items in one transaction; a failed
// booking attempt never leaves an orphan header behind.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(inv).Error
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	tx := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.position ASC")
		}).
		First(&inv, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	q := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ContractID != nil {
		q = q.Where("contract_id = ?", *filter.ContractID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var out []domain.Invoice
	tx := q.Order("date DESC").Find(&out)
	return out, tx.Error
}

// ListIssuedInPeriod returns non-cancelled invoices dated within [from, to).
func (r *InvoiceRepository) ListIssuedInPeriod(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	var out []domain.Invoice
	tx := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("status <> ?", domain.InvoiceCancelled).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&out)
	return out, tx.Error
}

// UpdatePayment writes the recomputed money fields and derived status
// after a payment was recorded.
func (r *InvoiceRepository) UpdatePayment(ctx context.Context, inv *domain.Invoice) error {
	tx := r.db.WithContext(ctx).Model(&domain.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
		"paid_amount": inv.PaidAmount,
		"balance":     inv.Balance,
		"status":      inv.Status,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	tx := r.db.WithContext(ctx).Model(&domain.Invoice{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountForYear returns how many invoices were issued in a calendar year;
// the next sequential ref is derived from it.
func (r *InvoiceRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("date >= ? AND date < ?", from, to).
		Count(&cnt)
	return cnt, tx.Error
}

// MarkOverdue flips every pending invoice whose due date has passed.
// Returns the ids that changed so callers can notify.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Invoice{}).
			Where("status = ?", domain.InvoicePending).
			Where("due_date < ?", now).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&domain.Invoice{}).
			Where("id IN ?", ids).
			Update("status", domain.InvoiceOverdue).Error
	})
	return ids, err
}
