package patient

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

var validGenders = map[string]bool{
	"male": true, "female": true,
}

func validatePatient(p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// AttachPartner creates or replaces the patient's partner record.
func (s *Service) AttachPartner(ctx context.Context, patientID uuid.UUID, p *Partner) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if _, err := s.repo.GetByID(ctx, patientID); err != nil {
		return fmt.Errorf("patient lookup: %w", err)
	}
	p.PatientID = patientID
	return s.repo.UpsertPartner(ctx, p)
}

func (s *Service) Partner(ctx context.Context, patientID uuid.UUID) (*Partner, error) {
	return s.repo.GetPartner(ctx, patientID)
}

func (s *Service) DetachPartner(ctx context.Context, patientID uuid.UUID) error {
	return s.repo.DeletePartner(ctx, patientID)
}
