package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockRepo) Update(ctx context.Context, a *Appointment) error {
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.appts, id)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	var items []*Appointment
	for _, a := range m.appts {
		if f.PatientID != uuid.Nil && a.PatientID != f.PatientID {
			continue
		}
		if f.DoctorID != uuid.Nil && a.DoctorID != f.DoctorID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if !f.Day.IsZero() && !sameDay(a.AppointmentDate, f.Day) {
			continue
		}
		if f.Day.IsZero() {
			if !f.From.IsZero() && a.AppointmentDate.Before(f.From.Truncate(24*time.Hour)) {
				continue
			}
			if !f.To.IsZero() && a.AppointmentDate.After(f.To) {
				continue
			}
		}
		items = append(items, a)
	}
	return items, len(items), nil
}

func validAppointment() *Appointment {
	return &Appointment{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: time.Now().AddDate(0, 0, 3),
		AppointmentTime: "09:30",
		Duration:        30,
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Appointment)
		wantErr bool
	}{
		{"valid", func(a *Appointment) {}, false},
		{"missing patient", func(a *Appointment) { a.PatientID = uuid.Nil }, true},
		{"missing doctor", func(a *Appointment) { a.DoctorID = uuid.Nil }, true},
		{"missing date", func(a *Appointment) { a.AppointmentDate = time.Time{} }, true},
		{"bad time", func(a *Appointment) { a.AppointmentTime = "9:30am" }, true},
		{"hour out of range", func(a *Appointment) { a.AppointmentTime = "25:00" }, true},
		{"zero duration", func(a *Appointment) { a.Duration = 0 }, true},
		{"bad status", func(a *Appointment) { a.Status = "pending" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.mutate(a)
			err := svc.Create(ctx, a)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateAppointmentDefaultsStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %q, want %q", a.Status, StatusScheduled)
	}
}

func TestTodayAndUpcoming(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	today := validAppointment()
	today.AppointmentDate = time.Now()
	inThreeDays := validAppointment()
	inThreeDays.AppointmentDate = time.Now().AddDate(0, 0, 3)
	nextMonth := validAppointment()
	nextMonth.AppointmentDate = time.Now().AddDate(0, 1, 0)

	for _, a := range []*Appointment{today, inThreeDays, nextMonth} {
		if err := svc.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	_, total, err := svc.Today(ctx, 20, 0)
	if err != nil {
		t.Fatalf("Today() error: %v", err)
	}
	if total != 1 {
		t.Errorf("Today() matched %d, want 1", total)
	}

	_, total, err = svc.Upcoming(ctx, 20, 0)
	if err != nil {
		t.Fatalf("Upcoming() error: %v", err)
	}
	if total != 2 {
		t.Errorf("Upcoming() matched %d, want 2", total)
	}
}

func TestReschedule(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	a := validAppointment()
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	newDate := time.Now().AddDate(0, 0, 10)
	got, err := svc.Reschedule(ctx, a.ID, newDate, "14:00")
	if err != nil {
		t.Fatalf("Reschedule() error: %v", err)
	}
	if got.Status != StatusRescheduled {
		t.Errorf("status = %q, want %q", got.Status, StatusRescheduled)
	}
	if got.AppointmentTime != "14:00" {
		t.Errorf("time = %q, want 14:00", got.AppointmentTime)
	}
	if !sameDay(got.AppointmentDate, newDate) {
		t.Errorf("date = %v, want %v", got.AppointmentDate, newDate)
	}

	if _, err := svc.Reschedule(ctx, a.ID, newDate, "late"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestCancel(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	a := validAppointment()
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := svc.Cancel(ctx, a.ID)
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Errorf("status = %q, want %q", got.Status, StatusCancelled)
	}

	if _, err := svc.Reschedule(ctx, a.ID, time.Now().AddDate(0, 0, 1), "10:00"); err == nil {
		t.Error("expected error rescheduling a cancelled appointment")
	}
}

func TestCancelCompletedAppointment(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := validAppointment()
	a.Status = StatusCompleted
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := svc.Cancel(ctx, a.ID); err == nil {
		t.Error("expected error cancelling a completed appointment")
	}
}
