package treatment

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

const treatmentCols = `id, patient_id, doctor_id, treatment_type, treatment_name, description,
	start_date, end_date, status, outcome, notes, created_at, updated_at`

func (r *repoPG) scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.PatientID, &t.DoctorID, &t.TreatmentType, &t.TreatmentName,
		&t.Description, &t.StartDate, &t.EndDate, &t.Status, &t.Outcome, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatment (id, patient_id, doctor_id, treatment_type, treatment_name,
			description, start_date, end_date, status, outcome, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		t.ID, t.PatientID, t.DoctorID, t.TreatmentType, t.TreatmentName,
		t.Description, t.StartDate, t.EndDate, t.Status, t.Outcome, t.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	t, err := r.scanTreatment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+treatmentCols+` FROM treatment WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	t.Stages, err = r.ListStages(ctx, t.ID)
	return t, err
}

func (r *repoPG) Update(ctx context.Context, t *Treatment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatment SET patient_id=$2, doctor_id=$3, treatment_type=$4, treatment_name=$5,
			description=$6, start_date=$7, end_date=$8, status=$9, outcome=$10, notes=$11,
			updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.PatientID, t.DoctorID, t.TreatmentType, t.TreatmentName,
		t.Description, t.StartDate, t.EndDate, t.Status, t.Outcome, t.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatment WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Treatment, int, error) {
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

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM treatment`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+treatmentCols+` FROM treatment`+where+
			fmt.Sprintf(` ORDER BY start_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		t, err := r.scanTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}

const stageCols = `id, treatment_id, stage_name, stage_order, start_date, end_date, status,
	description, notes, results, created_at, updated_at`

func (r *repoPG) scanStage(row pgx.Row) (*Stage, error) {
	var st Stage
	err := row.Scan(&st.ID, &st.TreatmentID, &st.StageName, &st.StageOrder, &st.StartDate,
		&st.EndDate, &st.Status, &st.Description, &st.Notes, &st.Results,
		&st.CreatedAt, &st.UpdatedAt)
	return &st, err
}

func (r *repoPG) CreateStage(ctx context.Context, st *Stage) error {
	st.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatment_stage (id, treatment_id, stage_name, stage_order, start_date,
			end_date, status, description, notes, results)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		st.ID, st.TreatmentID, st.StageName, st.StageOrder, st.StartDate,
		st.EndDate, st.Status, st.Description, st.Notes, st.Results)
	return err
}

func (r *repoPG) GetStage(ctx context.Context, id uuid.UUID) (*Stage, error) {
	return r.scanStage(r.conn(ctx).QueryRow(ctx,
		`SELECT `+stageCols+` FROM treatment_stage WHERE id = $1`, id))
}

func (r *repoPG) UpdateStage(ctx context.Context, st *Stage) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatment_stage SET stage_name=$2, stage_order=$3, start_date=$4, end_date=$5,
			status=$6, description=$7, notes=$8, results=$9, updated_at=NOW()
		WHERE id = $1`,
		st.ID, st.StageName, st.StageOrder, st.StartDate, st.EndDate,
		st.Status, st.Description, st.Notes, st.Results)
	return err
}

func (r *repoPG) DeleteStage(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatment_stage WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListStages(ctx context.Context, treatmentID uuid.UUID) ([]*Stage, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+stageCols+` FROM treatment_stage WHERE treatment_id = $1 ORDER BY stage_order`,
		treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stages []*Stage
	for rows.Next() {
		st, err := r.scanStage(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	return stages, nil
}
