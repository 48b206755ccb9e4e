package appointment

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true, StatusRescheduled: true,
}

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateAppointment(a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.AppointmentDate.IsZero() {
		return fmt.Errorf("appointment_date is required")
	}
	if !timeOfDay.MatchString(a.AppointmentTime) {
		return fmt.Errorf("appointment_time must be HH:MM, got %q", a.AppointmentTime)
	}
	if a.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if a.Status != "" && !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if err := validateAppointment(a); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := validateAppointment(a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	if f.Status != "" && !validStatuses[f.Status] {
		return nil, 0, fmt.Errorf("invalid status: %s", f.Status)
	}
	return s.repo.List(ctx, f, limit, offset)
}

// Today lists appointments scheduled for the current day.
func (s *Service) Today(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, Filter{Day: time.Now()}, limit, offset)
}

// Upcoming lists appointments within the next seven days, today included.
func (s *Service) Upcoming(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	now := time.Now()
	return s.repo.List(ctx, Filter{From: now, To: now.AddDate(0, 0, 7)}, limit, offset)
}

// Reschedule moves an appointment to a new date and time. The previous slot
// is recorded by flipping the status to rescheduled before re-saving.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date time.Time, timeOfDayStr string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled || a.Status == StatusCompleted {
		return nil, fmt.Errorf("cannot reschedule a %s appointment", a.Status)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("appointment_date is required")
	}
	if !timeOfDay.MatchString(timeOfDayStr) {
		return nil, fmt.Errorf("appointment_time must be HH:MM, got %q", timeOfDayStr)
	}
	a.AppointmentDate = date
	a.AppointmentTime = timeOfDayStr
	a.Status = StatusRescheduled
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Cancel marks an appointment cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCompleted {
		return nil, fmt.Errorf("cannot cancel a completed appointment")
	}
	a.Status = StatusCancelled
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
