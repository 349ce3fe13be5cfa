package domain

import "time"

type NotificationType string

const (
	NotifReservationCreated   NotificationType = "reservation_created"
	NotifReservationConfirmed NotificationType = "reservation_confirmed"
	NotifReservationCancelled NotificationType = "reservation_cancelled"
	NotifContractActivated    NotificationType = "contract_activated"
	NotifContractCompleted    NotificationType = "contract_completed"
	NotifInvoiceOverdue       NotificationType = "invoice_overdue"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at"`
}
