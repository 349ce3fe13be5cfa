package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	Position    int             `json:"position"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(12,2)"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2)"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
}

type Invoice struct {
	ID         int64      `json:"id"`
	Ref        string     `json:"ref" gorm:"uniqueIndex"`
	Date       time.Time  `json:"date"`
	DueDate    time.Time  `json:"due_date"`
	ContractID *int64     `json:"contract_id,omitempty"`
	ClientID   int64      `json:"client_id"`

	// Snapshot of the client at creation time. Later edits to the client
	// record never rewrite an issued invoice.
	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address,omitempty"`

	Items       []InvoiceItem   `json:"items"`
	SubTotal    decimal.Decimal `json:"sub_total" gorm:"type:decimal(12,2)"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:decimal(6,4)"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:decimal(12,2)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	PaidAmount  decimal.Decimal `json:"paid_amount" gorm:"type:decimal(12,2)"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:decimal(12,2)"`
	Status      InvoiceStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ComputeTotals derives every money field from the items. Item totals,
// sub total, tax and balance are always recomputed server-side; submitted
// totals are ignored.
func (inv *Invoice) ComputeTotals() {
	sub := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Total = inv.Items[i].Quantity.Mul(inv.Items[i].UnitPrice)
		sub = sub.Add(inv.Items[i].Total)
	}
	inv.SubTotal = sub
	inv.TaxAmount = sub.Mul(inv.TaxRate)
	inv.TotalAmount = sub.Add(inv.TaxAmount)
	inv.Balance = inv.TotalAmount.Sub(inv.PaidAmount)
}

// RefreshStatus recomputes the derived payment status. Cancelled is an
// explicit staff override and sticks: once cancelled, payments no longer
// move the status.
func (inv *Invoice) RefreshStatus(now time.Time) {
	if inv.Status == InvoiceCancelled {
		return
	}
	switch {
	case inv.Balance.LessThanOrEqual(decimal.Zero):
		inv.Status = InvoicePaid
	case now.After(inv.DueDate):
		inv.Status = InvoiceOverdue
	default:
		inv.Status = InvoicePending
	}
}

type InvoiceFilter struct {
	ClientID   *int64
	ContractID *int64
	Status     *InvoiceStatus
}
