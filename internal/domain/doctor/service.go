package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateDoctor(d *Doctor) error {
	if d.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if d.PhoneNumber == "" {
		return fmt.Errorf("phone_number is required")
	}
	if d.Specialization == "" {
		return fmt.Errorf("specialization is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if err := validateDoctor(d); err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if err := validateDoctor(d); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
