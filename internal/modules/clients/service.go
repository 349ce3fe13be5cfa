package clients

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gorent/internal/domain"
	"gorent/internal/pkg/validator"
)

type Service struct {
	clients ClientRepository
}

func NewService(clients ClientRepository) *Service {
	return &Service{clients: clients}
}

func (s *Service) Create(ctx context.Context, req ClientRequest) (*domain.Client, error) {
	status := domain.ClientNormal
	if req.Status != "" {
		status = domain.ClientStatus(req.Status)
	}

	c := &domain.Client{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		LicenseNumber: req.LicenseNumber,
		IDDocNumber:   req.IDDocNumber,
		Status:        status,
		Notes:         req.Notes,
	}

	if errs := validator.Validate(c); errs != nil {
		return nil, ErrValidation
	}

	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error) {
	return s.clients.List(ctx, status)
}

func (s *Service) Update(ctx context.Context, id int64, req ClientRequest) (*domain.Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.FullName = req.FullName
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	c.City = req.City
	c.LicenseNumber = req.LicenseNumber
	c.IDDocNumber = req.IDDocNumber
	if req.Status != "" {
		c.Status = domain.ClientStatus(req.Status)
	}
	c.Notes = req.Notes

	if errs := validator.Validate(c); errs != nil {
		return nil, ErrValidation
	}

	if err := s.clients.Update(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
