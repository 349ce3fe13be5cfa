package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gorent/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrReservationConflict is returned when the storage-level overlap guard
// rejects a write: a concurrent booking won the race after the in-process
// availability check had already passed.
var ErrReservationConflict = errors.New("reservation conflicts with a concurrent booking")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	tx := r.db.WithContext(ctx).Create(res)
	if tx.Error != nil {
		if isOverlapViolation(tx.Error) {
			return ErrReservationConflict
		}
		return tx.Error
	}
	return nil
}

// isOverlapViolation detects the reservations_no_overlap exclusion
// constraint (postgres code 23P01) and plain unique violations (23505).
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Client").
		First(&res, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).Model(&domain.Reservation{})

	if filter.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var out []domain.Reservation
	tx := q.Order("start_date DESC").Find(&out)
	return out, tx.Error
}

// CheckAvailability applies the half-open overlap predicate over every
// non-cancelled reservation of the vehicle. Recomputed on each call, never
// cached: statuses change underneath us.
func (r *ReservationRepository) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("vehicle_id = ?", vehicleID).
		Where("status <> ?", domain.ReservationCancelled).
		Where("start_date < ? AND end_date > ?", end, start)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var cnt int64
	if tx := q.Count(&cnt); tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	updates := map[string]any{"status": status}
	if status == domain.ReservationCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a reservation row. Only pending reservations may be
// deleted; the service enforces that before calling here.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Reservation{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
