package testresult

import (
	"time"

	"github.com/google/uuid"
)

// Interpretation statuses for a lab result.
const (
	StatusPending    = "pending"
	StatusNormal     = "normal"
	StatusAbnormal   = "abnormal"
	StatusBorderline = "borderline"
	StatusCritical   = "critical"
)

// TestResult maps to the test_result table. Each row is one lab test for a
// patient, optionally recorded against the partner instead.
type TestResult struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	PartnerID      *uuid.UUID `db:"partner_id" json:"partner_id,omitempty"`
	DoctorID       *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	TestType       string     `db:"test_type" json:"test_type"`
	TestName       string     `db:"test_name" json:"test_name"`
	TestDate       time.Time  `db:"test_date" json:"test_date"`
	Results        string     `db:"results" json:"results"`
	ReferenceRange *string    `db:"reference_range" json:"reference_range,omitempty"`
	Status         string     `db:"status" json:"status"`
	TestingLab     *string    `db:"testing_lab" json:"testing_lab,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Filter narrows result listings.
type Filter struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	TestType  string
	Status    string
}
