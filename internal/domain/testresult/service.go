package testresult

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

var validStatuses = map[string]bool{
	StatusPending: true, StatusNormal: true, StatusAbnormal: true,
	StatusBorderline: true, StatusCritical: true,
}

func validateResult(tr *TestResult) error {
	if tr.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if tr.TestType == "" {
		return fmt.Errorf("test_type is required")
	}
	if tr.TestName == "" {
		return fmt.Errorf("test_name is required")
	}
	if tr.TestDate.IsZero() {
		return fmt.Errorf("test_date is required")
	}
	if tr.Results == "" {
		return fmt.Errorf("results is required")
	}
	if tr.Status != "" && !validStatuses[tr.Status] {
		return fmt.Errorf("invalid status: %s", tr.Status)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, tr *TestResult) error {
	if err := validateResult(tr); err != nil {
		return err
	}
	if tr.Status == "" {
		tr.Status = StatusPending
	}
	return s.repo.Create(ctx, tr)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*TestResult, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, tr *TestResult) error {
	if err := validateResult(tr); err != nil {
		return err
	}
	if tr.Status == "" {
		tr.Status = StatusPending
	}
	return s.repo.Update(ctx, tr)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*TestResult, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Interpret records the clinical reading of a finished test.
func (s *Service) Interpret(ctx context.Context, id uuid.UUID, status string) (*TestResult, error) {
	if status == StatusPending || !validStatuses[status] {
		return nil, fmt.Errorf("invalid interpretation status: %s", status)
	}
	tr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tr.Status = status
	if err := s.repo.Update(ctx, tr); err != nil {
		return nil, err
	}
	return tr, nil
}
