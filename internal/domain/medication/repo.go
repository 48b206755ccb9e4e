package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTreatment(ctx context.Context, treatmentID uuid.UUID) ([]*Medication, error)

	CreateSchedule(ctx context.Context, s *Schedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error)
	UpdateSchedule(ctx context.Context, s *Schedule) error
	ListSchedules(ctx context.Context, medicationID uuid.UUID) ([]*Schedule, error)
}
