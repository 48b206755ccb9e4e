package treatment

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
	StatusPlanned: true, StatusActive: true, StatusCompleted: true, StatusCancelled: true,
}

var validOutcomes = map[string]bool{
	OutcomeSuccessful: true, OutcomeUnsuccessful: true, OutcomeOngoing: true,
}

func validateTreatment(t *Treatment) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if t.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if t.TreatmentType == "" {
		return fmt.Errorf("treatment_type is required")
	}
	if t.TreatmentName == "" {
		return fmt.Errorf("treatment_name is required")
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if t.Status != "" && !validStatuses[t.Status] {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if t.Outcome != nil && !validOutcomes[*t.Outcome] {
		return fmt.Errorf("invalid outcome: %s", *t.Outcome)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, t *Treatment) error {
	if err := validateTreatment(t); err != nil {
		return err
	}
	if t.Status == "" {
		t.Status = StatusPlanned
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, t *Treatment) error {
	if err := validateTreatment(t); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Treatment, int, error) {
	if f.Status != "" && !validStatuses[f.Status] {
		return nil, 0, fmt.Errorf("invalid status: %s", f.Status)
	}
	return s.repo.List(ctx, f, limit, offset)
}

// Complete closes a treatment with an outcome and stamps the end date.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, outcome string) (*Treatment, error) {
	if !validOutcomes[outcome] {
		return nil, fmt.Errorf("invalid outcome: %s", outcome)
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return nil, fmt.Errorf("treatment already %s", t.Status)
	}
	now := time.Now()
	t.Status = StatusCompleted
	t.Outcome = &outcome
	t.EndDate = &now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) AddStage(ctx context.Context, treatmentID uuid.UUID, st *Stage) error {
	if st.StageName == "" {
		return fmt.Errorf("stage_name is required")
	}
	if st.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if st.Status == "" {
		st.Status = StatusPlanned
	}
	if !validStatuses[st.Status] {
		return fmt.Errorf("invalid status: %s", st.Status)
	}
	if _, err := s.repo.GetByID(ctx, treatmentID); err != nil {
		return fmt.Errorf("treatment lookup: %w", err)
	}
	st.TreatmentID = treatmentID
	if st.StageOrder == 0 {
		stages, err := s.repo.ListStages(ctx, treatmentID)
		if err != nil {
			return err
		}
		st.StageOrder = len(stages) + 1
	}
	return s.repo.CreateStage(ctx, st)
}

func (s *Service) UpdateStage(ctx context.Context, st *Stage) error {
	if st.StageName == "" {
		return fmt.Errorf("stage_name is required")
	}
	if !validStatuses[st.Status] {
		return fmt.Errorf("invalid status: %s", st.Status)
	}
	existing, err := s.repo.GetStage(ctx, st.ID)
	if err != nil {
		return err
	}
	st.TreatmentID = existing.TreatmentID
	return s.repo.UpdateStage(ctx, st)
}

func (s *Service) DeleteStage(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStage(ctx, id)
}

func (s *Service) Stages(ctx context.Context, treatmentID uuid.UUID) ([]*Stage, error) {
	return s.repo.ListStages(ctx, treatmentID)
}
