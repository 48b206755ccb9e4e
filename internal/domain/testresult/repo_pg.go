package testresult

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

const resultCols = `id, patient_id, partner_id, doctor_id, test_type, test_name, test_date,
	results, reference_range, status, testing_lab, notes, created_at, updated_at`

func (r *repoPG) scanResult(row pgx.Row) (*TestResult, error) {
	var tr TestResult
	err := row.Scan(&tr.ID, &tr.PatientID, &tr.PartnerID, &tr.DoctorID, &tr.TestType,
		&tr.TestName, &tr.TestDate, &tr.Results, &tr.ReferenceRange, &tr.Status,
		&tr.TestingLab, &tr.Notes, &tr.CreatedAt, &tr.UpdatedAt)
	return &tr, err
}

func (r *repoPG) Create(ctx context.Context, tr *TestResult) error {
	tr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO test_result (id, patient_id, partner_id, doctor_id, test_type, test_name,
			test_date, results, reference_range, status, testing_lab, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		tr.ID, tr.PatientID, tr.PartnerID, tr.DoctorID, tr.TestType, tr.TestName,
		tr.TestDate, tr.Results, tr.ReferenceRange, tr.Status, tr.TestingLab, tr.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*TestResult, error) {
	return r.scanResult(r.conn(ctx).QueryRow(ctx,
		`SELECT `+resultCols+` FROM test_result WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, tr *TestResult) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE test_result SET patient_id=$2, partner_id=$3, doctor_id=$4, test_type=$5,
			test_name=$6, test_date=$7, results=$8, reference_range=$9, status=$10,
			testing_lab=$11, notes=$12, updated_at=NOW()
		WHERE id = $1`,
		tr.ID, tr.PatientID, tr.PartnerID, tr.DoctorID, tr.TestType, tr.TestName,
		tr.TestDate, tr.Results, tr.ReferenceRange, tr.Status, tr.TestingLab, tr.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM test_result WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*TestResult, int, error) {
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
	if f.TestType != "" {
		args = append(args, f.TestType)
		where += fmt.Sprintf(" AND test_type = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM test_result`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM test_result`+where+
			fmt.Sprintf(` ORDER BY test_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*TestResult
	for rows.Next() {
		tr, err := r.scanResult(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, tr)
	}
	return items, total, rows.Err()
}
