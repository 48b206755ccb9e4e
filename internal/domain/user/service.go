package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fertilia/clinic/internal/platform/auth"
)

type Service struct {
	repo   Repository
	jwtCfg auth.JWTConfig
}

func NewService(repo Repository, jwtCfg auth.JWTConfig) *Service {
	return &Service{repo: repo, jwtCfg: jwtCfg}
}

var validRoles = map[string]bool{
	auth.RoleAdmin: true, auth.RoleDoctor: true, auth.RoleStaff: true,
}

const minPasswordLength = 8

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if !validRoles[req.Role] {
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username %s is taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		DoctorID:     req.DoctorID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.IssueToken(s.jwtCfg, u.ID.String(), u.Username, []string{u.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: u}, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if len(next) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, u *User) error {
	if u.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	existing, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Username = existing.Username
	u.PasswordHash = existing.PasswordHash
	return s.repo.Update(ctx, u)
}

// Deactivate disables an account without deleting its audit trail.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = false
	return s.repo.Update(ctx, u)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}
