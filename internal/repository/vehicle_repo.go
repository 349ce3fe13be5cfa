package repository

import (
	"context"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if tx := r.db.WithContext(ctx).First(&v, id); tx.Error != nil {
		return nil, tx.Error
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{})

	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Transmission != nil {
		q = q.Where("transmission = ?", *filter.Transmission)
	}
	if filter.Fuel != nil {
		q = q.Where("fuel = ?", *filter.Fuel)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var out []domain.Vehicle
	tx := q.Order("brand ASC, model ASC").Find(&out)
	return out, tx.Error
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	tx := r.db.WithContext(ctx).Model(&domain.Vehicle{}).Where("id = ?", v.ID).Updates(map[string]any{
		"brand":         v.Brand,
		"model":         v.Model,
		"category":      v.Category,
		"year":          v.Year,
		"license_plate": v.LicensePlate,
		"transmission":  v.Transmission,
		"fuel":          v.Fuel,
		"seats":         v.Seats,
		"daily_rate":    v.DailyRate,
		"mileage":       v.Mileage,
		"status":        v.Status,
		"photo_url":     v.PhotoURL,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus moves the vehicle to a new fleet status; mileage is
// recorded alongside when a contract starts or ends.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus, mileage *int64) error {
	updates := map[string]any{"status": status}
	if mileage != nil {
		updates["mileage"] = *mileage
	}

	tx := r.db.WithContext(ctx).Model(&domain.Vehicle{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Vehicle{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
