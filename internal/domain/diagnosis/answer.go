package diagnosis

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// answerValue scores one submitted answer against its question, returning
// the score contribution and the answer text to persist.
type answerValue interface {
	score(q *Question) (int, string)
}

// valueFor picks the scoring variant for a plain (non multi-select) answer.
func valueFor(q *Question, raw string) answerValue {
	switch q.Type {
	case QuestionTypeSingleChoice:
		return choiceAnswer{raw: raw}
	case QuestionTypeNumber:
		return numericAnswer{raw: raw}
	default:
		return verbatimAnswer{raw: raw}
	}
}

// choiceAnswer resolves a submitted option id against the question's options.
// An id that does not resolve scores zero and keeps the raw input as text.
type choiceAnswer struct {
	raw string
}

func (a choiceAnswer) score(q *Question) (int, string) {
	id, err := uuid.Parse(a.raw)
	if err != nil {
		return 0, a.raw
	}
	opt := q.optionByID(id)
	if opt == nil {
		return 0, a.raw
	}
	return opt.Score, opt.Text
}

// multiChoiceAnswer sums the weights of the resolved options. Unknown ids are
// skipped; the answer text joins the resolved option texts in input order.
type multiChoiceAnswer struct {
	optionIDs []uuid.UUID
}

func (a multiChoiceAnswer) score(q *Question) (int, string) {
	total := 0
	var texts []string
	for _, id := range a.optionIDs {
		opt := q.optionByID(id)
		if opt == nil {
			continue
		}
		total += opt.Score
		texts = append(texts, opt.Text)
	}
	return total, strings.Join(texts, ", ")
}

// numericAnswer scores through the question's bracket table. Malformed input
// scores zero.
type numericAnswer struct {
	raw string
}

func (a numericAnswer) score(q *Question) (int, string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(a.raw), 64)
	if err != nil {
		return 0, a.raw
	}
	return scoreNumeric(q.NumericKind, v), a.raw
}

// verbatimAnswer covers text and date questions: never scored, text kept.
type verbatimAnswer struct {
	raw string
}

func (a verbatimAnswer) score(q *Question) (int, string) {
	return 0, a.raw
}
