package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error)
	// Partner
	UpsertPartner(ctx context.Context, p *Partner) error
	GetPartner(ctx context.Context, patientID uuid.UUID) (*Partner, error)
	DeletePartner(ctx context.Context, patientID uuid.UUID) error
}
