package repository

import (
	"context"

	"gorm.io/gorm"

	"gorent/internal/domain"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	if tx := r.db.WithContext(ctx).First(&c, id); tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error) {
	q := r.db.WithContext(ctx).Model(&domain.Client{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var out []domain.Client
	tx := q.Order("full_name ASC").Find(&out)
	return out, tx.Error
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	tx := r.db.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", c.ID).Updates(map[string]any{
		"full_name":      c.FullName,
		"email":          c.Email,
		"phone":          c.Phone,
		"address":        c.Address,
		"city":           c.City,
		"license_number": c.LicenseNumber,
		"id_doc_number":  c.IDDocNumber,
		"status":         c.Status,
		"notes":          c.Notes,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Client{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
