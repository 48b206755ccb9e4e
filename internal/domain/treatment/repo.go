package treatment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error)
	Update(ctx context.Context, t *Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Treatment, int, error)

	CreateStage(ctx context.Context, st *Stage) error
	GetStage(ctx context.Context, id uuid.UUID) (*Stage, error)
	UpdateStage(ctx context.Context, st *Stage) error
	DeleteStage(ctx context.Context, id uuid.UUID) error
	ListStages(ctx context.Context, treatmentID uuid.UUID) ([]*Stage, error)
}
