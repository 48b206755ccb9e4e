package doctor

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockRepo) Update(ctx context.Context, d *Doctor) error {
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.doctors, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.doctors {
		if f.Name != "" && !strings.Contains(strings.ToLower(d.FullName), strings.ToLower(f.Name)) {
			continue
		}
		if f.Specialization != "" && !strings.Contains(strings.ToLower(d.Specialization), strings.ToLower(f.Specialization)) {
			continue
		}
		items = append(items, d)
	}
	return items, len(items), nil
}

func validDoctor() *Doctor {
	return &Doctor{
		FullName:       "Dr. Minh Pham",
		PhoneNumber:    "+84 90 123 4567",
		Specialization: "Reproductive Endocrinology",
	}
}

func TestCreateDoctorValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Doctor)
		wantErr bool
	}{
		{"valid", func(d *Doctor) {}, false},
		{"missing name", func(d *Doctor) { d.FullName = "" }, true},
		{"missing phone", func(d *Doctor) { d.PhoneNumber = "" }, true},
		{"missing specialization", func(d *Doctor) { d.Specialization = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDoctor()
			tt.mutate(d)
			err := svc.Create(ctx, d)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDoctorListFilters(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, d := range []*Doctor{
		{FullName: "Dr. Minh Pham", PhoneNumber: "1", Specialization: "Reproductive Endocrinology"},
		{FullName: "Dr. Lan Vo", PhoneNumber: "2", Specialization: "Urology"},
		{FullName: "Dr. Hoa Le", PhoneNumber: "3", Specialization: "Reproductive Endocrinology"},
	} {
		if err := svc.Create(ctx, d); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	_, total, err := svc.List(ctx, Filter{Specialization: "reproductive"}, 20, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 2 {
		t.Errorf("specialization filter matched %d, want 2", total)
	}

	_, total, err = svc.List(ctx, Filter{Name: "lan"}, 20, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 1 {
		t.Errorf("name filter matched %d, want 1", total)
	}
}

func TestDoctorGetDelete(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	d := validDoctor()
	if err := svc.Create(ctx, d); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.FullName != d.FullName {
		t.Errorf("Get() name = %q", got.FullName)
	}

	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.Get(ctx, d.ID); err == nil {
		t.Error("expected error after delete")
	}
}
