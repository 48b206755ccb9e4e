package procedure

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Procedure) error
	GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error)
	Update(ctx context.Context, p *Procedure) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStage(ctx context.Context, stageID uuid.UUID) ([]*Procedure, error)
}
