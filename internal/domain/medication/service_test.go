package medication

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	meds      map[uuid.UUID]*Medication
	schedules map[uuid.UUID]*Schedule
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		meds:      make(map[uuid.UUID]*Medication),
		schedules: make(map[uuid.UUID]*Schedule),
	}
}

func (m *mockRepo) Create(ctx context.Context, med *Medication) error {
	med.ID = uuid.New()
	m.meds[med.ID] = med
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	med, ok := m.meds[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return med, nil
}

func (m *mockRepo) Update(ctx context.Context, med *Medication) error {
	m.meds[med.ID] = med
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.meds, id)
	return nil
}

func (m *mockRepo) ListByTreatment(ctx context.Context, treatmentID uuid.UUID) ([]*Medication, error) {
	var items []*Medication
	for _, med := range m.meds {
		if med.TreatmentID == treatmentID {
			items = append(items, med)
		}
	}
	return items, nil
}

func (m *mockRepo) CreateSchedule(ctx context.Context, s *Schedule) error {
	s.ID = uuid.New()
	m.schedules[s.ID] = s
	return nil
}

func (m *mockRepo) GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockRepo) UpdateSchedule(ctx context.Context, s *Schedule) error {
	m.schedules[s.ID] = s
	return nil
}

func (m *mockRepo) ListSchedules(ctx context.Context, medicationID uuid.UUID) ([]*Schedule, error) {
	var items []*Schedule
	for _, s := range m.schedules {
		if s.MedicationID == medicationID {
			items = append(items, s)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledDate.Equal(items[j].ScheduledDate) {
			return items[i].ScheduledDate.Before(items[j].ScheduledDate)
		}
		return items[i].ScheduledTime < items[j].ScheduledTime
	})
	return items, nil
}

func validMedication() *Medication {
	return &Medication{
		TreatmentID:    uuid.New(),
		MedicationName: "Gonal-f",
		StartDate:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateMedicationValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Medication)
		wantErr bool
	}{
		{"valid", func(m *Medication) {}, false},
		{"missing treatment", func(m *Medication) { m.TreatmentID = uuid.Nil }, true},
		{"missing name", func(m *Medication) { m.MedicationName = "" }, true},
		{"missing start date", func(m *Medication) { m.StartDate = time.Time{} }, true},
		{"bad status", func(m *Medication) { m.Status = "paused" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedication()
			tt.mutate(m)
			err := svc.Create(ctx, m)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscontinueMedication(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	m := validMedication()
	if err := svc.Create(ctx, m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if m.Status != StatusActive {
		t.Fatalf("status = %q, want active default", m.Status)
	}

	got, err := svc.Discontinue(ctx, m.ID)
	if err != nil {
		t.Fatalf("Discontinue() error: %v", err)
	}
	if got.Status != StatusDiscontinued {
		t.Errorf("status = %q, want %q", got.Status, StatusDiscontinued)
	}
	if got.EndDate == nil {
		t.Error("expected end date to be stamped")
	}

	if _, err := svc.Discontinue(ctx, m.ID); err == nil {
		t.Error("expected error discontinuing a non-active medication")
	}
}

func TestScheduleLifecycle(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	m := validMedication()
	if err := svc.Create(ctx, m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	sch := &Schedule{
		ScheduledDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "08:00",
		Dosage:        "150 IU",
	}
	if err := svc.AddSchedule(ctx, m.ID, sch); err != nil {
		t.Fatalf("AddSchedule() error: %v", err)
	}
	if sch.MedicationID != m.ID {
		t.Error("schedule not linked to medication")
	}

	takenAt := time.Date(2026, 3, 3, 8, 12, 0, 0, time.UTC)
	got, err := svc.MarkTaken(ctx, sch.ID, takenAt)
	if err != nil {
		t.Fatalf("MarkTaken() error: %v", err)
	}
	if !got.IsTaken {
		t.Error("expected is_taken true")
	}
	if got.ActualTakenTime == nil || !got.ActualTakenTime.Equal(takenAt) {
		t.Errorf("actual taken time = %v, want %v", got.ActualTakenTime, takenAt)
	}

	items, err := svc.Schedules(ctx, m.ID)
	if err != nil {
		t.Fatalf("Schedules() error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 schedule, got %d", len(items))
	}
}

func TestAddScheduleValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	m := validMedication()
	if err := svc.Create(ctx, m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	tests := []struct {
		name string
		sch  *Schedule
	}{
		{"missing date", &Schedule{ScheduledTime: "08:00", Dosage: "1 tablet"}},
		{"bad time", &Schedule{ScheduledDate: time.Now(), ScheduledTime: "8am", Dosage: "1 tablet"}},
		{"missing dosage", &Schedule{ScheduledDate: time.Now(), ScheduledTime: "08:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.AddSchedule(ctx, m.ID, tt.sch); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	sch := &Schedule{ScheduledDate: time.Now(), ScheduledTime: "08:00", Dosage: "1 tablet"}
	if err := svc.AddSchedule(ctx, uuid.New(), sch); err == nil {
		t.Error("expected error for unknown medication")
	}
}

func TestListByTreatment(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	treatmentID := uuid.New()
	for i := 0; i < 2; i++ {
		m := validMedication()
		m.TreatmentID = treatmentID
		if err := svc.Create(ctx, m); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}
	other := validMedication()
	if err := svc.Create(ctx, other); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	items, err := svc.ListByTreatment(ctx, treatmentID)
	if err != nil {
		t.Fatalf("ListByTreatment() error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 medications, got %d", len(items))
	}
}
