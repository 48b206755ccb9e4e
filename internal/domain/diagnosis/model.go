package diagnosis

import (
	"time"

	"github.com/google/uuid"

	"github.com/fertilia/clinic/internal/domain/patient"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeText           QuestionType = "text"
	QuestionTypeNumber         QuestionType = "number"
	QuestionTypeDate           QuestionType = "date"
)

// NumericKind tags a number question with the bracket table used to score it.
type NumericKind string

const (
	NumericAge NumericKind = "age"
	NumericBMI NumericKind = "bmi"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// Question maps to the diagnosis_question table.
type Question struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	Text             string       `db:"question_text" json:"text"`
	Type             QuestionType `db:"question_type" json:"type"`
	ApplicableGender *Gender      `db:"applicable_gender" json:"applicable_gender,omitempty"`
	NumericKind      *NumericKind `db:"numeric_kind" json:"numeric_kind,omitempty"`
	DisplayOrder     int          `db:"display_order" json:"display_order"`
	IsActive         bool         `db:"is_active" json:"is_active"`
	Options          []*Option    `db:"-" json:"options,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// optionByID resolves one of the question's own options.
func (q *Question) optionByID(id uuid.UUID) *Option {
	for _, o := range q.Options {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Option maps to the question_option table.
type Option struct {
	ID           uuid.UUID `db:"id" json:"id"`
	QuestionID   uuid.UUID `db:"question_id" json:"question_id"`
	Text         string    `db:"option_text" json:"text"`
	Score        int       `db:"score" json:"score"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
}

// DiagnosisResult maps to the diagnosis_result table.
type DiagnosisResult struct {
	ID              uuid.UUID          `db:"id" json:"id"`
	PatientID       uuid.UUID          `db:"patient_id" json:"patient_id"`
	TotalScore      int                `db:"total_score" json:"total_score"`
	RiskLevel       RiskLevel          `db:"risk_level" json:"risk_level"`
	DiagnosisText   string             `db:"diagnosis_text" json:"diagnosis_text"`
	Recommendations string             `db:"recommendations" json:"recommendations"`
	DiagnosisDate   time.Time          `db:"diagnosis_date" json:"diagnosis_date"`
	Answers         []*DiagnosisAnswer `db:"-" json:"answers,omitempty"`
	Patient         *patient.Patient   `db:"-" json:"patient,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
}

// DiagnosisAnswer maps to the diagnosis_answer table.
type DiagnosisAnswer struct {
	ID                uuid.UUID `db:"id" json:"id"`
	DiagnosisResultID uuid.UUID `db:"diagnosis_result_id" json:"diagnosis_result_id"`
	QuestionID        uuid.UUID `db:"question_id" json:"question_id"`
	QuestionText      string    `db:"-" json:"question_text,omitempty"`
	AnswerText        string    `db:"answer_text" json:"answer_text"`
	Score             int       `db:"score" json:"score"`
	SelectedOptionIDs *string   `db:"selected_option_ids" json:"selected_option_ids,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// SubmitRequest is the self-diagnosis submission payload. Answers are keyed
// by question id; single-choice values carry an option id, numeric values the
// raw number, text and date values free text. Multi-select questions arrive
// separately with the chosen option ids in selection order.
type SubmitRequest struct {
	Patient      *patient.Patient            `json:"patient"`
	Answers      map[uuid.UUID]string        `json:"answers"`
	MultiAnswers map[uuid.UUID][]uuid.UUID   `json:"multi_answers"`
}
