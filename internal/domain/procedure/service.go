package procedure

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true,
}

func validateProcedure(p *Procedure) error {
	if p.TreatmentStageID == uuid.Nil {
		return fmt.Errorf("treatment_stage_id is required")
	}
	if p.ProcedureName == "" {
		return fmt.Errorf("procedure_name is required")
	}
	if p.ScheduledDate.IsZero() {
		return fmt.Errorf("scheduled_date is required")
	}
	if p.Cost < 0 {
		return fmt.Errorf("cost cannot be negative")
	}
	if p.Status != "" && !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Procedure) error {
	if err := validateProcedure(p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = StatusScheduled
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Procedure) error {
	if err := validateProcedure(p); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.TreatmentStageID = existing.TreatmentStageID
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByStage(ctx context.Context, stageID uuid.UUID) ([]*Procedure, error) {
	return s.repo.ListByStage(ctx, stageID)
}

// Complete records that a scheduled procedure was performed, stamping the
// actual date and any findings.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, actualDate time.Time, results *string) (*Procedure, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusScheduled {
		return nil, fmt.Errorf("procedure is %s, only scheduled procedures can be completed", p.Status)
	}
	if actualDate.IsZero() {
		actualDate = time.Now()
	}
	p.Status = StatusCompleted
	p.ActualDate = &actualDate
	if results != nil {
		p.Results = results
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Cancel drops a procedure that will not be performed.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusCompleted {
		return nil, fmt.Errorf("completed procedures cannot be cancelled")
	}
	p.Status = StatusCancelled
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
