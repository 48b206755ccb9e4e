package testresult

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, tr *TestResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*TestResult, error)
	Update(ctx context.Context, tr *TestResult) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*TestResult, int, error)
}
