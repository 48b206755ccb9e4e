package medication

import (
	"context"
	"fmt"
	"regexp"
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
	StatusActive: true, StatusCompleted: true, StatusDiscontinued: true,
}

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateMedication(m *Medication) error {
	if m.TreatmentID == uuid.Nil {
		return fmt.Errorf("treatment_id is required")
	}
	if m.MedicationName == "" {
		return fmt.Errorf("medication_name is required")
	}
	if m.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if m.Status != "" && !validStatuses[m.Status] {
		return fmt.Errorf("invalid status: %s", m.Status)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, m *Medication) error {
	if err := validateMedication(m); err != nil {
		return err
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Medication) error {
	if err := validateMedication(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByTreatment(ctx context.Context, treatmentID uuid.UUID) ([]*Medication, error) {
	return s.repo.ListByTreatment(ctx, treatmentID)
}

// Discontinue stops an active prescription and stamps the end date.
func (s *Service) Discontinue(ctx context.Context, id uuid.UUID) (*Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusActive {
		return nil, fmt.Errorf("medication is %s, only active medications can be discontinued", m.Status)
	}
	now := time.Now()
	m.Status = StatusDiscontinued
	m.EndDate = &now
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddSchedule plans one intake for a medication.
func (s *Service) AddSchedule(ctx context.Context, medicationID uuid.UUID, sch *Schedule) error {
	if sch.ScheduledDate.IsZero() {
		return fmt.Errorf("scheduled_date is required")
	}
	if !timeOfDay.MatchString(sch.ScheduledTime) {
		return fmt.Errorf("scheduled_time must be HH:MM, got %q", sch.ScheduledTime)
	}
	if sch.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if _, err := s.repo.GetByID(ctx, medicationID); err != nil {
		return fmt.Errorf("medication lookup: %w", err)
	}
	sch.MedicationID = medicationID
	return s.repo.CreateSchedule(ctx, sch)
}

// MarkTaken records that a scheduled intake happened.
func (s *Service) MarkTaken(ctx context.Context, scheduleID uuid.UUID, takenAt time.Time) (*Schedule, error) {
	sch, err := s.repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	sch.IsTaken = true
	sch.ActualTakenTime = &takenAt
	if err := s.repo.UpdateSchedule(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *Service) Schedules(ctx context.Context, medicationID uuid.UUID) ([]*Schedule, error) {
	return s.repo.ListSchedules(ctx, medicationID)
}
