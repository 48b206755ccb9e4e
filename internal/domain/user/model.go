package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the app_user table. PasswordHash is a bcrypt digest and is
// never serialized.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Email        *string    `db:"email" json:"email,omitempty"`
	PhoneNumber  *string    `db:"phone_number" json:"phone_number,omitempty"`
	Role         string     `db:"role" json:"role"`
	DoctorID     *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	FullName    string     `json:"full_name"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Role        string     `json:"role"`
	DoctorID    *uuid.UUID `json:"doctor_id,omitempty"`
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the bearer token and the account it belongs to.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
