package medication

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fertilia/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medCols = `id, treatment_id, medication_name, dosage, instructions, frequency,
	start_date, end_date, status, notes, created_at, updated_at`

func (r *repoPG) scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.TreatmentID, &m.MedicationName, &m.Dosage, &m.Instructions,
		&m.Frequency, &m.StartDate, &m.EndDate, &m.Status, &m.Notes,
		&m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication (id, treatment_id, medication_name, dosage, instructions,
			frequency, start_date, end_date, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.TreatmentID, m.MedicationName, m.Dosage, m.Instructions,
		m.Frequency, m.StartDate, m.EndDate, m.Status, m.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	m, err := r.scanMedication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM medication WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	m.Schedules, err = r.ListSchedules(ctx, m.ID)
	return m, err
}

func (r *repoPG) Update(ctx context.Context, m *Medication) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET medication_name=$2, dosage=$3, instructions=$4, frequency=$5,
			start_date=$6, end_date=$7, status=$8, notes=$9, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.MedicationName, m.Dosage, m.Instructions, m.Frequency,
		m.StartDate, m.EndDate, m.Status, m.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByTreatment(ctx context.Context, treatmentID uuid.UUID) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medCols+` FROM medication WHERE treatment_id = $1 ORDER BY start_date`,
		treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := r.scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, nil
}

const scheduleCols = `id, medication_id, scheduled_date, scheduled_time, dosage, is_taken,
	actual_taken_time, instructions, notes, created_at, updated_at`

func (r *repoPG) scanSchedule(row pgx.Row) (*Schedule, error) {
	var s Schedule
	err := row.Scan(&s.ID, &s.MedicationID, &s.ScheduledDate, &s.ScheduledTime, &s.Dosage,
		&s.IsTaken, &s.ActualTakenTime, &s.Instructions, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) CreateSchedule(ctx context.Context, s *Schedule) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication_schedule (id, medication_id, scheduled_date, scheduled_time,
			dosage, is_taken, actual_taken_time, instructions, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.MedicationID, s.ScheduledDate, s.ScheduledTime,
		s.Dosage, s.IsTaken, s.ActualTakenTime, s.Instructions, s.Notes)
	return err
}

func (r *repoPG) GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	return r.scanSchedule(r.conn(ctx).QueryRow(ctx,
		`SELECT `+scheduleCols+` FROM medication_schedule WHERE id = $1`, id))
}

func (r *repoPG) UpdateSchedule(ctx context.Context, s *Schedule) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication_schedule SET scheduled_date=$2, scheduled_time=$3, dosage=$4,
			is_taken=$5, actual_taken_time=$6, instructions=$7, notes=$8, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.ScheduledDate, s.ScheduledTime, s.Dosage,
		s.IsTaken, s.ActualTakenTime, s.Instructions, s.Notes)
	return err
}

func (r *repoPG) ListSchedules(ctx context.Context, medicationID uuid.UUID) ([]*Schedule, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+scheduleCols+` FROM medication_schedule
		WHERE medication_id = $1 ORDER BY scheduled_date, scheduled_time`,
		medicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Schedule
	for rows.Next() {
		s, err := r.scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}
