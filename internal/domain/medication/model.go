package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication statuses.
const (
	StatusActive       = "active"
	StatusCompleted    = "completed"
	StatusDiscontinued = "discontinued"
)

// Medication maps to the medication table. Each row is a prescription scoped
// to a treatment.
type Medication struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	TreatmentID    uuid.UUID  `db:"treatment_id" json:"treatment_id"`
	MedicationName string     `db:"medication_name" json:"medication_name"`
	Dosage         *string    `db:"dosage" json:"dosage,omitempty"`
	Instructions   *string    `db:"instructions" json:"instructions,omitempty"`
	Frequency      *string    `db:"frequency" json:"frequency,omitempty"`
	StartDate      time.Time  `db:"start_date" json:"start_date"`
	EndDate        *time.Time `db:"end_date" json:"end_date,omitempty"`
	Status         string     `db:"status" json:"status"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`

	Schedules []*Schedule `db:"-" json:"schedules,omitempty"`
}

// Schedule maps to the medication_schedule table: one planned intake.
type Schedule struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	MedicationID    uuid.UUID  `db:"medication_id" json:"medication_id"`
	ScheduledDate   time.Time  `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime   string     `db:"scheduled_time" json:"scheduled_time"`
	Dosage          string     `db:"dosage" json:"dosage"`
	IsTaken         bool       `db:"is_taken" json:"is_taken"`
	ActualTakenTime *time.Time `db:"actual_taken_time" json:"actual_taken_time,omitempty"`
	Instructions    *string    `db:"instructions" json:"instructions,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
