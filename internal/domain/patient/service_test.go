package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	partners map[uuid.UUID]*Partner
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: make(map[uuid.UUID]*Patient),
		partners: make(map[uuid.UUID]*Partner),
	}
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.RegistrationDate.IsZero() {
		p.RegistrationDate = time.Now()
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		if f.Name != "" && !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(f.Name)) {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		items = append(items, p)
	}
	return items, len(items), nil
}

func (m *mockRepo) UpsertPartner(ctx context.Context, p *Partner) error {
	m.partners[p.PatientID] = p
	return nil
}

func (m *mockRepo) GetPartner(ctx context.Context, patientID uuid.UUID) (*Partner, error) {
	p, ok := m.partners[patientID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockRepo) DeletePartner(ctx context.Context, patientID uuid.UUID) error {
	delete(m.partners, patientID)
	return nil
}

func validPatient() *Patient {
	return &Patient{
		FullName:    "Jane Roe",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
	}
}

func TestCreatePatientValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Patient)
		wantErr bool
	}{
		{"valid", func(p *Patient) {}, false},
		{"missing name", func(p *Patient) { p.FullName = "" }, true},
		{"missing birth date", func(p *Patient) { p.DateOfBirth = time.Time{} }, true},
		{"bad gender", func(p *Patient) { p.Gender = "unknown" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)
			err := svc.Create(ctx, p)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateAssignsID(t *testing.T) {
	svc := NewService(newMockRepo())
	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if p.RegistrationDate.IsZero() {
		t.Error("expected registration date default")
	}
}

func TestListFilters(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, p := range []*Patient{
		{FullName: "Anna Nguyen", DateOfBirth: time.Now().AddDate(-30, 0, 0), Gender: "female"},
		{FullName: "Bao Tran", DateOfBirth: time.Now().AddDate(-34, 0, 0), Gender: "male"},
		{FullName: "Anna Smith", DateOfBirth: time.Now().AddDate(-28, 0, 0), Gender: "female"},
	} {
		if err := svc.Create(ctx, p); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	items, total, err := svc.List(ctx, Filter{Name: "anna"}, 20, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("name filter matched %d, want 2", total)
	}

	_, total, err = svc.List(ctx, Filter{Gender: "male"}, 20, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 1 {
		t.Errorf("gender filter matched %d, want 1", total)
	}
}

func TestAttachPartner(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := validPatient()
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	partner := &Partner{
		FullName:    "John Roe",
		DateOfBirth: time.Date(1988, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
	}
	if err := svc.AttachPartner(ctx, p.ID, partner); err != nil {
		t.Fatalf("AttachPartner() error: %v", err)
	}
	if partner.PatientID != p.ID {
		t.Error("partner not linked to patient")
	}

	got, err := svc.Partner(ctx, p.ID)
	if err != nil {
		t.Fatalf("Partner() error: %v", err)
	}
	if got.FullName != "John Roe" {
		t.Errorf("partner name = %q", got.FullName)
	}

	if err := svc.DetachPartner(ctx, p.ID); err != nil {
		t.Fatalf("DetachPartner() error: %v", err)
	}
	if _, err := svc.Partner(ctx, p.ID); err == nil {
		t.Error("expected partner gone after detach")
	}
}

func TestAttachPartnerUnknownPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	partner := &Partner{FullName: "John Roe", Gender: "male"}
	if err := svc.AttachPartner(context.Background(), uuid.New(), partner); err == nil {
		t.Error("expected error for unknown patient")
	}
}
