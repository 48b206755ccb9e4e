package doctor

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

const doctorCols = `id, full_name, phone_number, email, specialization, license_number,
	qualifications, biography, created_at, updated_at`

func (r *repoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FullName, &d.PhoneNumber, &d.Email, &d.Specialization,
		&d.LicenseNumber, &d.Qualifications, &d.Biography, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (id, full_name, phone_number, email, specialization, license_number,
			qualifications, biography)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.FullName, d.PhoneNumber, d.Email, d.Specialization, d.LicenseNumber,
		d.Qualifications, d.Biography)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET full_name=$2, phone_number=$3, email=$4, specialization=$5,
			license_number=$6, qualifications=$7, biography=$8, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FullName, d.PhoneNumber, d.Email, d.Specialization,
		d.LicenseNumber, d.Qualifications, d.Biography)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Doctor, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		where += fmt.Sprintf(" AND full_name ILIKE $%d", len(args))
	}
	if f.Specialization != "" {
		args = append(args, "%"+f.Specialization+"%")
		where += fmt.Sprintf(" AND specialization ILIKE $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctor`+where+
			fmt.Sprintf(` ORDER BY full_name LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}
