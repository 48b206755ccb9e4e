package appointment

import (
	"context"
	"fmt"

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

const apptCols = `id, patient_id, doctor_id, treatment_id, appointment_date, appointment_time,
	duration, purpose, appointment_type, status, notes, created_at, updated_at`

func (r *repoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.TreatmentID, &a.AppointmentDate,
		&a.AppointmentTime, &a.Duration, &a.Purpose, &a.AppointmentType, &a.Status,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, treatment_id, appointment_date,
			appointment_time, duration, purpose, appointment_type, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.PatientID, a.DoctorID, a.TreatmentID, a.AppointmentDate,
		a.AppointmentTime, a.Duration, a.Purpose, a.AppointmentType, a.Status, a.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET patient_id=$2, doctor_id=$3, treatment_id=$4, appointment_date=$5,
			appointment_time=$6, duration=$7, purpose=$8, appointment_type=$9, status=$10,
			notes=$11, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.DoctorID, a.TreatmentID, a.AppointmentDate,
		a.AppointmentTime, a.Duration, a.Purpose, a.AppointmentType, a.Status, a.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.PatientID != uuid.Nil {
		args = append(args, f.PatientID)
		where += fmt.Sprintf(" AND patient_id = $%d", len(args))
	}
	if f.DoctorID != uuid.Nil {
		args = append(args, f.DoctorID)
		where += fmt.Sprintf(" AND doctor_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !f.Day.IsZero() {
		args = append(args, f.Day)
		where += fmt.Sprintf(" AND appointment_date::date = $%d::date", len(args))
	} else {
		if !f.From.IsZero() {
			args = append(args, f.From)
			where += fmt.Sprintf(" AND appointment_date::date >= $%d::date", len(args))
		}
		if !f.To.IsZero() {
			args = append(args, f.To)
			where += fmt.Sprintf(" AND appointment_date::date <= $%d::date", len(args))
		}
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointment`+where+
			fmt.Sprintf(` ORDER BY appointment_date, appointment_time LIMIT $%d OFFSET $%d`,
				len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
