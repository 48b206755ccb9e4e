package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Collect(ctx context.Context) (*Stats, error) {
	var s Stats

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM patient),
			(SELECT COUNT(*) FROM doctor),
			(SELECT COUNT(*) FROM treatment WHERE status = 'active'),
			(SELECT COUNT(*) FROM treatment WHERE status = 'completed'),
			(SELECT COUNT(*) FROM treatment WHERE status = 'completed' AND outcome = 'successful'),
			(SELECT COUNT(*) FROM appointment WHERE appointment_date::date = CURRENT_DATE),
			(SELECT COUNT(*) FROM appointment
				WHERE date_trunc('month', appointment_date) = date_trunc('month', CURRENT_DATE))`).
		Scan(&s.TotalPatients, &s.TotalDoctors, &s.ActiveTreatments, &s.CompletedTreatments,
			&s.SuccessfulTreatments, &s.TodayAppointments, &s.MonthAppointments)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT treatment_type, COUNT(*),
			COUNT(*) FILTER (WHERE outcome = 'successful')
		FROM treatment
		WHERE status = 'completed'
		GROUP BY treatment_type
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ts TypeStat
		if err := rows.Scan(&ts.TreatmentType, &ts.Count, &ts.SuccessCount); err != nil {
			return nil, err
		}
		s.TreatmentsByType = append(s.TreatmentsByType, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM start_date)::int, COUNT(*)
		FROM treatment
		WHERE EXTRACT(YEAR FROM start_date) = EXTRACT(YEAR FROM CURRENT_DATE)
		GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ms MonthStat
		if err := rows.Scan(&ms.Month, &ms.Count); err != nil {
			return nil, err
		}
		s.MonthlyTreatments = append(s.MonthlyTreatments, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = r.pool.Query(ctx,
		`SELECT risk_level, COUNT(*) FROM diagnosis_result GROUP BY risk_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	s.RiskDistribution = make(map[string]int)
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		s.RiskDistribution[level] = count
	}
	return &s, rows.Err()
}
