package treatment

import (
	"time"

	"github.com/google/uuid"
)

// Treatment statuses.
const (
	StatusPlanned   = "planned"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Treatment outcomes, set when a treatment concludes.
const (
	OutcomeSuccessful   = "successful"
	OutcomeUnsuccessful = "unsuccessful"
	OutcomeOngoing      = "ongoing"
)

// Treatment maps to the treatment table. A treatment is one course of care
// (IVF cycle, IUI attempt, hormonal therapy) for a patient under a doctor.
type Treatment struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	TreatmentType string     `db:"treatment_type" json:"treatment_type"`
	TreatmentName string     `db:"treatment_name" json:"treatment_name"`
	Description   *string    `db:"description" json:"description,omitempty"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
	Status        string     `db:"status" json:"status"`
	Outcome       *string    `db:"outcome" json:"outcome,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	Stages []*Stage `db:"-" json:"stages,omitempty"`
}

// Stage maps to the treatment_stage table.
type Stage struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TreatmentID uuid.UUID  `db:"treatment_id" json:"treatment_id"`
	StageName   string     `db:"stage_name" json:"stage_name"`
	StageOrder  int        `db:"stage_order" json:"stage_order"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	Status      string     `db:"status" json:"status"`
	Description *string    `db:"description" json:"description,omitempty"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	Results     *string    `db:"results" json:"results,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Filter narrows treatment listings.
type Filter struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    string
}
