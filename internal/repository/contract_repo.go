package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	var c domain.Contract
	tx := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		First(&c, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *ContractRepository) List(ctx context.Context, filter domain.ContractFilter) ([]domain.Contract, error) {
	q := r.db.WithContext(ctx).Model(&domain.Contract{})

	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}

	var out []domain.Contract
	tx := q.Order("start_date DESC").Find(&out)
	return out, tx.Error
}

// ListInPeriod returns contracts in the given statuses whose rental range
// intersects [from, to). Used by the reporting folds.
func (r *ContractRepository) ListInPeriod(ctx context.Context, from, to time.Time, statuses []domain.ContractStatus) ([]domain.Contract, error) {
	var out []domain.Contract
	tx := r.db.WithContext(ctx).
		Model(&domain.Contract{}).
		Where("status IN ?", statuses).
		Where("start_date < ? AND end_date > ?", to, from).
		Order("start_date ASC").
		Find(&out)
	return out, tx.Error
}

// Update rewrites the negotiable fields of a draft or pending contract.
func (r *ContractRepository) Update(ctx context.Context, c *domain.Contract) error {
	tx := r.db.WithContext(ctx).Model(&domain.Contract{}).Where("id = ?", c.ID).Updates(map[string]any{
		"type":        c.Type,
		"client_id":   c.ClientID,
		"vehicle_id":  c.VehicleID,
		"start_date":  c.StartDate,
		"end_date":    c.EndDate,
		"daily_rate":  c.DailyRate,
		"total_days":  c.TotalDays,
		"discount":    c.Discount,
		"extra_fees":  c.ExtraFees,
		"total_amount": c.TotalAmount,
		"deposit":     c.Deposit,
		"paid_amount": c.PaidAmount,
		"notes":       c.Notes,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplyTransition advances the contract and, when the step starts or
// ends the rental, moves the vehicle in the same transaction so the two
// rows never diverge. vehicleStatus nil means the step leaves the fleet
// alone.
func (r *ContractRepository) ApplyTransition(ctx context.Context, contractID, vehicleID int64, status domain.ContractStatus, startMileage, endMileage *int64, vehicleStatus *domain.VehicleStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": status}
		if startMileage != nil {
			updates["start_mileage"] = *startMileage
		}
		if endMileage != nil {
			updates["end_mileage"] = *endMileage
		}

		res := tx.Model(&domain.Contract{}).Where("id = ?", contractID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if vehicleStatus == nil {
			return nil
		}

		vehicleUpdates := map[string]any{"status": *vehicleStatus}
		mileage := startMileage
		if mileage == nil {
			mileage = endMileage
		}
		if mileage != nil {
			vehicleUpdates["mileage"] = *mileage
		}

		res = tx.Model(&domain.Vehicle{}).Where("id = ?", vehicleID).Updates(vehicleUpdates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
