package patient

import (
	"context"
	"fmt"
	"time"

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

const patientCols = `id, full_name, date_of_birth, gender, phone_number, email, address,
	occupation, medical_history, allergies_info, registration_date, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.DateOfBirth, &p.Gender, &p.PhoneNumber, &p.Email,
		&p.Address, &p.Occupation, &p.MedicalHistory, &p.AllergiesInfo,
		&p.RegistrationDate, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.RegistrationDate.IsZero() {
		p.RegistrationDate = time.Now()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, full_name, date_of_birth, gender, phone_number, email, address,
			occupation, medical_history, allergies_info, registration_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.FullName, p.DateOfBirth, p.Gender, p.PhoneNumber, p.Email, p.Address,
		p.Occupation, p.MedicalHistory, p.AllergiesInfo, p.RegistrationDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET full_name=$2, date_of_birth=$3, gender=$4, phone_number=$5, email=$6,
			address=$7, occupation=$8, medical_history=$9, allergies_info=$10, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.DateOfBirth, p.Gender, p.PhoneNumber, p.Email,
		p.Address, p.Occupation, p.MedicalHistory, p.AllergiesInfo)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		where += fmt.Sprintf(" AND full_name ILIKE $%d", len(args))
	}
	if f.Gender != "" {
		args = append(args, f.Gender)
		where += fmt.Sprintf(" AND gender = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient`+where+
			fmt.Sprintf(` ORDER BY registration_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

const partnerCols = `id, patient_id, full_name, date_of_birth, gender, phone_number, email,
	occupation, medical_history, created_at, updated_at`

func (r *repoPG) UpsertPartner(ctx context.Context, p *Partner) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO partner (id, patient_id, full_name, date_of_birth, gender, phone_number, email,
			occupation, medical_history)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (patient_id) DO UPDATE SET
			full_name=EXCLUDED.full_name, date_of_birth=EXCLUDED.date_of_birth,
			gender=EXCLUDED.gender, phone_number=EXCLUDED.phone_number, email=EXCLUDED.email,
			occupation=EXCLUDED.occupation, medical_history=EXCLUDED.medical_history,
			updated_at=NOW()`,
		p.ID, p.PatientID, p.FullName, p.DateOfBirth, p.Gender, p.PhoneNumber, p.Email,
		p.Occupation, p.MedicalHistory)
	return err
}

func (r *repoPG) GetPartner(ctx context.Context, patientID uuid.UUID) (*Partner, error) {
	var p Partner
	err := r.conn(ctx).QueryRow(ctx, `SELECT `+partnerCols+` FROM partner WHERE patient_id = $1`, patientID).
		Scan(&p.ID, &p.PatientID, &p.FullName, &p.DateOfBirth, &p.Gender, &p.PhoneNumber, &p.Email,
			&p.Occupation, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) DeletePartner(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM partner WHERE patient_id = $1`, patientID)
	return err
}
