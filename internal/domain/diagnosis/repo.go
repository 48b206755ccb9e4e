package diagnosis

import (
	"context"

	"github.com/google/uuid"

	"github.com/fertilia/clinic/internal/domain/patient"
)

type QuestionRepository interface {
	ListActive(ctx context.Context, gender Gender) ([]*Question, error)
	ListAll(ctx context.Context) ([]*Question, error)
	ReplaceCatalog(ctx context.Context, questions []*Question) error
}

type ResultRepository interface {
	CreateResult(ctx context.Context, r *DiagnosisResult) error
	CreateAnswer(ctx context.Context, a *DiagnosisAnswer) error
	GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisResult, error)
	ListAnswers(ctx context.Context, resultID uuid.UUID) ([]*DiagnosisAnswer, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DiagnosisResult, int, error)
}

// PatientStore is the slice of the patient repository the diagnosis flow
// needs: creating walk-in patients and resolving them for result views.
type PatientStore interface {
	Create(ctx context.Context, p *patient.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}
