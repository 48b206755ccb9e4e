package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fertilia/clinic/internal/platform/cache"
)

// TxRunner executes fn inside a database transaction carried on the context.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	questions QuestionRepository
	results   ResultRepository
	patients  PatientStore
	runTx     TxRunner
	cache     *cache.Cache
	cacheTTL  time.Duration
}

func NewService(questions QuestionRepository, results ResultRepository, patients PatientStore,
	runTx TxRunner, c *cache.Cache, cacheTTL time.Duration) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{
		questions: questions,
		results:   results,
		patients:  patients,
		runTx:     runTx,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// ErrInvalidInput marks errors caused by the submission itself, as opposed to
// catalog or storage failures. Handlers map it to a 400.
var ErrInvalidInput = errors.New("invalid input")

var validSubmitGenders = map[Gender]bool{
	GenderMale: true, GenderFemale: true,
}

func questionsCacheKey(gender Gender) string {
	return "diagnosis:questions:" + string(gender)
}

// ApplicableQuestions returns the active questionnaire for a gender: questions
// with no gender restriction or a matching one, in display order.
func (s *Service) ApplicableQuestions(ctx context.Context, gender Gender) ([]*Question, error) {
	if !validSubmitGenders[gender] {
		return nil, fmt.Errorf("%w: invalid gender: %s", ErrInvalidInput, gender)
	}

	key := questionsCacheKey(gender)
	var cached []*Question
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	questions, err := s.questions.ListActive(ctx, gender)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, questions, s.cacheTTL)
	return questions, nil
}

// ProcessDiagnosis scores a questionnaire submission, creating the patient
// record first when the submission is from a new patient. The result and its
// answer rows are written in a single transaction.
func (s *Service) ProcessDiagnosis(ctx context.Context, req *SubmitRequest) (*DiagnosisResult, error) {
	if req == nil || req.Patient == nil {
		return nil, fmt.Errorf("%w: patient is required", ErrInvalidInput)
	}
	if req.Patient.FullName == "" {
		return nil, fmt.Errorf("%w: patient full_name is required", ErrInvalidInput)
	}
	gender := Gender(req.Patient.Gender)
	if !validSubmitGenders[gender] {
		return nil, fmt.Errorf("%w: invalid patient gender: %s", ErrInvalidInput, req.Patient.Gender)
	}

	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}

	totalScore := 0
	var answers []*DiagnosisAnswer

	// Walk the catalog in display order so answer rows come out deterministic.
	// Submitted ids that match no catalog question are silently skipped.
	for _, q := range questions {
		if raw, ok := req.Answers[q.ID]; ok {
			score, text := valueFor(q, raw).score(q)
			totalScore += score
			answers = append(answers, &DiagnosisAnswer{
				QuestionID: q.ID,
				AnswerText: text,
				Score:      score,
			})
		}
		if ids, ok := req.MultiAnswers[q.ID]; ok {
			score, text := (multiChoiceAnswer{optionIDs: ids}).score(q)
			totalScore += score
			selected := joinIDs(ids)
			answers = append(answers, &DiagnosisAnswer{
				QuestionID:        q.ID,
				AnswerText:        text,
				Score:             score,
				SelectedOptionIDs: &selected,
			})
		}
	}

	level := ClassifyRisk(totalScore)
	result := &DiagnosisResult{
		TotalScore:      totalScore,
		RiskLevel:       level,
		DiagnosisText:   DiagnosisText(level),
		Recommendations: Recommendations(level, gender),
		DiagnosisDate:   time.Now(),
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if req.Patient.ID == uuid.Nil {
			if err := s.patients.Create(ctx, req.Patient); err != nil {
				return fmt.Errorf("creating patient: %w", err)
			}
		}
		result.PatientID = req.Patient.ID
		if err := s.results.CreateResult(ctx, result); err != nil {
			return fmt.Errorf("creating result: %w", err)
		}
		for _, a := range answers {
			a.DiagnosisResultID = result.ID
			if err := s.results.CreateAnswer(ctx, a); err != nil {
				return fmt.Errorf("creating answer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Answers = answers
	result.Patient = req.Patient
	return result, nil
}

func joinIDs(ids []uuid.UUID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return strings.Join(strs, ",")
}

// Result loads a stored result with its patient and answers.
func (s *Service) Result(ctx context.Context, id uuid.UUID) (*DiagnosisResult, error) {
	result, err := s.results.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	answers, err := s.results.ListAnswers(ctx, result.ID)
	if err != nil {
		return nil, err
	}
	result.Answers = answers
	if p, err := s.patients.GetByID(ctx, result.PatientID); err == nil {
		result.Patient = p
	}
	return result, nil
}

// PatientHistory lists a patient's results, newest first.
func (s *Service) PatientHistory(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DiagnosisResult, int, error) {
	return s.results.ListByPatient(ctx, patientID, limit, offset)
}

// SeedCatalog replaces the question catalog in one transaction and drops any
// cached questionnaire.
func (s *Service) SeedCatalog(ctx context.Context, questions []*Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("catalog has no questions")
	}
	err := s.runTx(ctx, func(ctx context.Context) error {
		return s.questions.ReplaceCatalog(ctx, questions)
	})
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx,
		questionsCacheKey(GenderMale), questionsCacheKey(GenderFemale))
}
