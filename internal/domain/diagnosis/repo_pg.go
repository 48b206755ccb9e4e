package diagnosis

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

// =========== Question Repository ===========

type questionRepoPG struct{ pool *pgxpool.Pool }

func NewQuestionRepoPG(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepoPG{pool: pool}
}

func (r *questionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const questionCols = `id, question_text, question_type, applicable_gender, numeric_kind,
	display_order, is_active, created_at, updated_at`

func (r *questionRepoPG) queryQuestions(ctx context.Context, sql string, args ...interface{}) ([]*Question, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*Question
	byID := make(map[uuid.UUID]*Question)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &q.ApplicableGender, &q.NumericKind,
			&q.DisplayOrder, &q.IsActive, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
		byID[q.ID] = &q
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	optRows, err := r.conn(ctx).Query(ctx, `
		SELECT id, question_id, option_text, score, display_order
		FROM question_option WHERE question_id = ANY($1)
		ORDER BY display_order`, ids)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()
	for optRows.Next() {
		var o Option
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.Score, &o.DisplayOrder); err != nil {
			return nil, err
		}
		if q, ok := byID[o.QuestionID]; ok {
			q.Options = append(q.Options, &o)
		}
	}
	return questions, optRows.Err()
}

func (r *questionRepoPG) ListActive(ctx context.Context, gender Gender) ([]*Question, error) {
	return r.queryQuestions(ctx, `
		SELECT `+questionCols+` FROM diagnosis_question
		WHERE is_active AND (applicable_gender IS NULL OR applicable_gender = $1)
		ORDER BY display_order`, gender)
}

func (r *questionRepoPG) ListAll(ctx context.Context) ([]*Question, error) {
	return r.queryQuestions(ctx, `SELECT `+questionCols+` FROM diagnosis_question ORDER BY display_order`)
}

func (r *questionRepoPG) ReplaceCatalog(ctx context.Context, questions []*Question) error {
	c := r.conn(ctx)
	if _, err := c.Exec(ctx, `DELETE FROM question_option`); err != nil {
		return err
	}
	if _, err := c.Exec(ctx, `DELETE FROM diagnosis_question`); err != nil {
		return err
	}
	for _, q := range questions {
		if _, err := c.Exec(ctx, `
			INSERT INTO diagnosis_question (id, question_text, question_type, applicable_gender,
				numeric_kind, display_order, is_active)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			q.ID, q.Text, q.Type, q.ApplicableGender, q.NumericKind, q.DisplayOrder, q.IsActive); err != nil {
			return err
		}
		for _, o := range q.Options {
			if _, err := c.Exec(ctx, `
				INSERT INTO question_option (id, question_id, option_text, score, display_order)
				VALUES ($1,$2,$3,$4,$5)`,
				o.ID, o.QuestionID, o.Text, o.Score, o.DisplayOrder); err != nil {
				return err
			}
		}
	}
	return nil
}

// =========== Result Repository ===========

type resultRepoPG struct{ pool *pgxpool.Pool }

func NewResultRepoPG(pool *pgxpool.Pool) ResultRepository {
	return &resultRepoPG{pool: pool}
}

func (r *resultRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const resultCols = `id, patient_id, total_score, risk_level, diagnosis_text, recommendations,
	diagnosis_date, created_at`

func (r *resultRepoPG) scanResult(row pgx.Row) (*DiagnosisResult, error) {
	var res DiagnosisResult
	err := row.Scan(&res.ID, &res.PatientID, &res.TotalScore, &res.RiskLevel,
		&res.DiagnosisText, &res.Recommendations, &res.DiagnosisDate, &res.CreatedAt)
	return &res, err
}

func (r *resultRepoPG) CreateResult(ctx context.Context, res *DiagnosisResult) error {
	res.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO diagnosis_result (id, patient_id, total_score, risk_level, diagnosis_text,
			recommendations, diagnosis_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		res.ID, res.PatientID, res.TotalScore, res.RiskLevel, res.DiagnosisText,
		res.Recommendations, res.DiagnosisDate)
	return err
}

func (r *resultRepoPG) CreateAnswer(ctx context.Context, a *DiagnosisAnswer) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO diagnosis_answer (id, diagnosis_result_id, question_id, answer_text, score,
			selected_option_ids)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.DiagnosisResultID, a.QuestionID, a.AnswerText, a.Score, a.SelectedOptionIDs)
	return err
}

func (r *resultRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisResult, error) {
	return r.scanResult(r.conn(ctx).QueryRow(ctx,
		`SELECT `+resultCols+` FROM diagnosis_result WHERE id = $1`, id))
}

func (r *resultRepoPG) ListAnswers(ctx context.Context, resultID uuid.UUID) ([]*DiagnosisAnswer, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.diagnosis_result_id, a.question_id, COALESCE(q.question_text, ''),
			a.answer_text, a.score, a.selected_option_ids, a.created_at
		FROM diagnosis_answer a
		LEFT JOIN diagnosis_question q ON q.id = a.question_id
		WHERE a.diagnosis_result_id = $1
		ORDER BY q.display_order NULLS LAST, a.created_at`, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var answers []*DiagnosisAnswer
	for rows.Next() {
		var a DiagnosisAnswer
		if err := rows.Scan(&a.ID, &a.DiagnosisResultID, &a.QuestionID, &a.QuestionText,
			&a.AnswerText, &a.Score, &a.SelectedOptionIDs, &a.CreatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

func (r *resultRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DiagnosisResult, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM diagnosis_result WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM diagnosis_result WHERE patient_id = $1
		ORDER BY diagnosis_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DiagnosisResult
	for rows.Next() {
		res, err := r.scanResult(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, res)
	}
	return items, total, rows.Err()
}
