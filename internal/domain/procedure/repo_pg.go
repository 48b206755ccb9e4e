package procedure

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

const procCols = `id, treatment_stage_id, procedure_name, scheduled_date, actual_date,
	status, description, results, notes, cost, created_at, updated_at`

func (r *repoPG) scanProcedure(row pgx.Row) (*Procedure, error) {
	var p Procedure
	err := row.Scan(&p.ID, &p.TreatmentStageID, &p.ProcedureName, &p.ScheduledDate,
		&p.ActualDate, &p.Status, &p.Description, &p.Results, &p.Notes, &p.Cost,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Procedure) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO procedure (id, treatment_stage_id, procedure_name, scheduled_date,
			actual_date, status, description, results, notes, cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.TreatmentStageID, p.ProcedureName, p.ScheduledDate,
		p.ActualDate, p.Status, p.Description, p.Results, p.Notes, p.Cost)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return r.scanProcedure(r.conn(ctx).QueryRow(ctx,
		`SELECT `+procCols+` FROM procedure WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Procedure) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE procedure SET procedure_name=$2, scheduled_date=$3, actual_date=$4, status=$5,
			description=$6, results=$7, notes=$8, cost=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.ProcedureName, p.ScheduledDate, p.ActualDate, p.Status,
		p.Description, p.Results, p.Notes, p.Cost)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM procedure WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByStage(ctx context.Context, stageID uuid.UUID) ([]*Procedure, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+procCols+` FROM procedure WHERE treatment_stage_id = $1 ORDER BY scheduled_date`,
		stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Procedure
	for rows.Next() {
		p, err := r.scanProcedure(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
