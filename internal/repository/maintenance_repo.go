package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRecord, error) {
	var m domain.MaintenanceRecord
	if tx := r.db.WithContext(ctx).Preload("Vehicle").First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *MaintenanceRepository) List(ctx context.Context, vehicleID *int64, status *domain.MaintenanceStatus) ([]domain.MaintenanceRecord, error) {
	q := r.db.WithContext(ctx).Model(&domain.MaintenanceRecord{})

	if vehicleID != nil {
		q = q.Where("vehicle_id = ?", *vehicleID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var out []domain.MaintenanceRecord
	tx := q.Order("date DESC").Find(&out)
	return out, tx.Error
}

// ListInPeriod returns records dated within [from, to); reporting input.
func (r *MaintenanceRepository) ListInPeriod(ctx context.Context, from, to time.Time) ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	tx := r.db.WithContext(ctx).
		Model(&domain.MaintenanceRecord{}).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&out)
	return out, tx.Error
}

func (r *MaintenanceRepository) Update(ctx context.Context, m *domain.MaintenanceRecord) error {
	tx := r.db.WithContext(ctx).Model(&domain.MaintenanceRecord{}).Where("id = ?", m.ID).Updates(map[string]any{
		"vehicle_id":  m.VehicleID,
		"type":        m.Type,
		"description": m.Description,
		"garage":      m.Garage,
		"date":        m.Date,
		"parts_cost":  m.PartsCost,
		"labor_cost":  m.LaborCost,
		"total_cost":  m.TotalCost,
		"status":      m.Status,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.MaintenanceRecord{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
