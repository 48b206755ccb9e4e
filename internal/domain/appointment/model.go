package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Appointment maps to the appointment table. AppointmentDate holds the day,
// AppointmentTime the time of day as "HH:MM", Duration is in minutes.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	TreatmentID     *uuid.UUID `db:"treatment_id" json:"treatment_id,omitempty"`
	AppointmentDate time.Time  `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string     `db:"appointment_time" json:"appointment_time"`
	Duration        int        `db:"duration" json:"duration"`
	Purpose         *string    `db:"purpose" json:"purpose,omitempty"`
	AppointmentType *string    `db:"appointment_type" json:"appointment_type,omitempty"`
	Status          string     `db:"status" json:"status"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Filter narrows appointment listings.
type Filter struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    string
	// Day restricts to a single calendar day when non-zero.
	Day time.Time
	// From/To bound the date range when non-zero. Day wins over the range.
	From time.Time
	To   time.Time
}
