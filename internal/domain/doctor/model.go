package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Specialization string    `db:"specialization" json:"specialization"`
	LicenseNumber  *string   `db:"license_number" json:"license_number,omitempty"`
	Qualifications *string   `db:"qualifications" json:"qualifications,omitempty"`
	Biography      *string   `db:"biography" json:"biography,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Filter narrows doctor listings.
type Filter struct {
	Name           string
	Specialization string
}
