package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID               uuid.UUID `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"full_name"`
	DateOfBirth      time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender           string    `db:"gender" json:"gender"`
	PhoneNumber      *string   `db:"phone_number" json:"phone_number,omitempty"`
	Email            *string   `db:"email" json:"email,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	Occupation       *string   `db:"occupation" json:"occupation,omitempty"`
	MedicalHistory   *string   `db:"medical_history" json:"medical_history,omitempty"`
	AllergiesInfo    *string   `db:"allergies_info" json:"allergies_info,omitempty"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Partner maps to the partner table. A patient has at most one partner record.
type Partner struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	DateOfBirth    time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender         string    `db:"gender" json:"gender"`
	PhoneNumber    *string   `db:"phone_number" json:"phone_number,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Occupation     *string   `db:"occupation" json:"occupation,omitempty"`
	MedicalHistory *string   `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Filter narrows patient listings.
type Filter struct {
	Name   string
	Gender string
}
