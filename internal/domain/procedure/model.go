package procedure

import (
	"time"

	"github.com/google/uuid"
)

// Procedure statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Procedure maps to the procedure table. Each row is one clinical procedure
// planned within a treatment stage. Cost is in the clinic's billing currency.
type Procedure struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	TreatmentStageID uuid.UUID  `db:"treatment_stage_id" json:"treatment_stage_id"`
	ProcedureName    string     `db:"procedure_name" json:"procedure_name"`
	ScheduledDate    time.Time  `db:"scheduled_date" json:"scheduled_date"`
	ActualDate       *time.Time `db:"actual_date" json:"actual_date,omitempty"`
	Status           string     `db:"status" json:"status"`
	Description      *string    `db:"description" json:"description,omitempty"`
	Results          *string    `db:"results" json:"results,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	Cost             float64    `db:"cost" json:"cost"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
