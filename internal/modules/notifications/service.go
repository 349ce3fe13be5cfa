package notifications

import (
	"context"
	"fmt"

	"gorent/internal/domain"
)

// Service persists back-office notifications and pushes them to the live
// feed. It fans out to every active manager and admin; agents work from
// the lists they already watch.
type Service struct {
	notifs NotificationRepository
	users  UserLister
	hub    *Hub
}

func NewService(notifs NotificationRepository, users UserLister, hub *Hub) *Service {
	return &Service{notifs: notifs, users: users, hub: hub}
}

func (s *Service) NotifyReservationCreated(ctx context.Context, res *domain.Reservation) error {
	return s.fanOut(ctx, domain.NotifReservationCreated,
		"New reservation",
		fmt.Sprintf("Reservation #%d: vehicle %d, %s to %s",
			res.ID, res.VehicleID,
			res.StartDate.Format("2006-01-02"), res.EndDate.Format("2006-01-02")),
		map[string]any{"reservation_id": res.ID})
}

func (s *Service) NotifyReservationStatus(ctx context.Context, res *domain.Reservation, status domain.ReservationStatus) error {
	var ntype domain.NotificationType
	var title string

	switch status {
	case domain.ReservationConfirmed:
		ntype = domain.NotifReservationConfirmed
		title = "Reservation confirmed"
	case domain.ReservationCancelled:
		ntype = domain.NotifReservationCancelled
		title = "Reservation cancelled"
	default:
		return nil
	}

	return s.fanOut(ctx, ntype, title,
		fmt.Sprintf("Reservation #%d is now %s", res.ID, status),
		map[string]any{"reservation_id": res.ID})
}

func (s *Service) NotifyContractStatus(ctx context.Context, c *domain.Contract, status domain.ContractStatus) error {
	var ntype domain.NotificationType
	var title string

	switch status {
	case domain.ContractActive:
		ntype = domain.NotifContractActivated
		title = "Rental started"
	case domain.ContractCompleted:
		ntype = domain.NotifContractCompleted
		title = "Rental completed"
	default:
		return nil
	}

	return s.fanOut(ctx, ntype, title,
		fmt.Sprintf("Contract #%d is now %s", c.ID, status),
		map[string]any{"contract_id": c.ID})
}

func (s *Service) NotifyInvoiceOverdue(ctx context.Context, invoiceID int64) error {
	return s.fanOut(ctx, domain.NotifInvoiceOverdue,
		"Invoice overdue",
		fmt.Sprintf("Invoice #%d passed its due date unpaid", invoiceID),
		map[string]any{"invoice_id": invoiceID})
}

func (s *Service) ListForUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.notifs.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, userID, notifID int64) error {
	return s.notifs.MarkRead(ctx, userID, notifID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifs.MarkAllRead(ctx, userID)
}

func (s *Service) fanOut(ctx context.Context, ntype domain.NotificationType, title, message string, data any) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}

	var firstErr error
	for _, u := range users {
		if !u.Active {
			continue
		}
		if u.Role != domain.RoleAdmin && u.Role != domain.RoleManager {
			continue
		}

		n := &domain.Notification{
			UserID:  u.ID,
			Type:    ntype,
			Title:   title,
			Message: message,
			Data:    data,
		}
		if err := s.notifs.Create(ctx, n); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if s.hub != nil {
			s.hub.Push(u.ID, n)
		}
	}
	return firstErr
}
