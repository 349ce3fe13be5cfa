package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

type CreateInvoiceRequest struct {
	ClientID   int64                `json:"client_id" binding:"required"`
	ContractID *int64               `json:"contract_id"`
	Date       time.Time            `json:"date"`
	DueDate    time.Time            `json:"due_date"`
	TaxRate    decimal.Decimal      `json:"tax_rate"`
	Items      []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
