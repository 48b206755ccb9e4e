package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fertilia/clinic/internal/platform/auth"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRepo) Update(ctx context.Context, u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	u, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var items []*User
	for _, u := range m.users {
		items = append(items, u)
	}
	return items, len(items), nil
}

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{
		SigningKey: []byte("test-signing-key"),
		Issuer:     "clinic-test",
		TokenTTL:   time.Hour,
	}
}

func validRegister() *RegisterRequest {
	return &RegisterRequest{
		Username: "nurse.mai",
		Password: "correct-horse",
		FullName: "Mai Tran",
		Role:     auth.RoleStaff,
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMockRepo(), testJWTConfig())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantErr bool
	}{
		{"valid", func(r *RegisterRequest) {}, false},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, true},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, true},
		{"missing name", func(r *RegisterRequest) { r.FullName = "" }, true},
		{"bad role", func(r *RegisterRequest) { r.Role = "nurse" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			req.Username = req.Username + "." + tt.name
			tt.mutate(req)
			_, err := svc.Register(ctx, req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewService(newMockRepo(), testJWTConfig())
	req := validRegister()
	u, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if u.PasswordHash == req.Password || u.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if !u.IsActive {
		t.Error("expected account active by default")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(newMockRepo(), testJWTConfig())
	ctx := context.Background()
	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if _, err := svc.Register(ctx, validRegister()); err == nil {
		t.Error("expected error for duplicate username")
	}
}

func TestLogin(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testJWTConfig())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{Username: "nurse.mai", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.LastLogin == nil {
		t.Error("expected last login to be stamped")
	}

	if _, err := svc.Login(ctx, &LoginRequest{Username: "nurse.mai", Password: "wrong"}); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "correct-horse"}); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testJWTConfig())
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := svc.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Username: "nurse.mai", Password: "correct-horse"}); err == nil {
		t.Error("expected error for deactivated account")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testJWTConfig())
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "wrong", "new-password-1"); err == nil {
		t.Error("expected error for wrong current password")
	}
	if err := svc.ChangePassword(ctx, u.ID, "correct-horse", "tiny"); err == nil {
		t.Error("expected error for short new password")
	}
	if err := svc.ChangePassword(ctx, u.ID, "correct-horse", "new-password-1"); err != nil {
		t.Fatalf("ChangePassword() error: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Username: "nurse.mai", Password: "new-password-1"}); err != nil {
		t.Errorf("Login() with new password error: %v", err)
	}
}

func TestUpdatePreservesCredentials(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testJWTConfig())
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	originalHash := u.PasswordHash

	update := &User{ID: u.ID, FullName: "Mai T. Tran", Role: auth.RoleDoctor, IsActive: true}
	if err := svc.Update(ctx, update); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if update.Username != "nurse.mai" {
		t.Errorf("username = %q, want preserved", update.Username)
	}
	if update.PasswordHash != originalHash {
		t.Error("password hash not preserved across update")
	}
}
