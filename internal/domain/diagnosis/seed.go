package diagnosis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Catalog is the on-disk question dataset loaded by the seed command.
type Catalog struct {
	Version   int               `json:"version"`
	Questions []CatalogQuestion `json:"questions"`
}

type CatalogQuestion struct {
	Text        string          `json:"text"`
	Type        QuestionType    `json:"type"`
	Gender      *Gender         `json:"gender,omitempty"`
	NumericKind *NumericKind    `json:"numeric_kind,omitempty"`
	Order       int             `json:"order"`
	Active      *bool           `json:"active,omitempty"`
	Options     []CatalogOption `json:"options,omitempty"`
}

type CatalogOption struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
	Order int    `json:"order"`
}

var validQuestionTypes = map[QuestionType]bool{
	QuestionTypeSingleChoice:   true,
	QuestionTypeMultipleChoice: true,
	QuestionTypeText:           true,
	QuestionTypeNumber:         true,
	QuestionTypeDate:           true,
}

var validNumericKinds = map[NumericKind]bool{
	NumericAge: true,
	NumericBMI: true,
}

// LoadCatalogFile reads and materializes a catalog dataset from disk.
func LoadCatalogFile(path string) ([]*Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates the dataset and materializes questions with fresh ids.
func ParseCatalog(data []byte) ([]*Question, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(cat.Questions) == 0 {
		return nil, fmt.Errorf("catalog has no questions")
	}

	questions := make([]*Question, 0, len(cat.Questions))
	for i, cq := range cat.Questions {
		if cq.Text == "" {
			return nil, fmt.Errorf("question %d: text is required", i+1)
		}
		if !validQuestionTypes[cq.Type] {
			return nil, fmt.Errorf("question %d: invalid type %q", i+1, cq.Type)
		}
		if cq.NumericKind != nil && !validNumericKinds[*cq.NumericKind] {
			return nil, fmt.Errorf("question %d: invalid numeric kind %q", i+1, *cq.NumericKind)
		}
		choice := cq.Type == QuestionTypeSingleChoice || cq.Type == QuestionTypeMultipleChoice
		if choice && len(cq.Options) == 0 {
			return nil, fmt.Errorf("question %d: choice question needs options", i+1)
		}

		q := &Question{
			ID:               uuid.New(),
			Text:             cq.Text,
			Type:             cq.Type,
			ApplicableGender: cq.Gender,
			NumericKind:      cq.NumericKind,
			DisplayOrder:     cq.Order,
			IsActive:         true,
		}
		if q.DisplayOrder == 0 {
			q.DisplayOrder = i + 1
		}
		if cq.Active != nil {
			q.IsActive = *cq.Active
		}
		for j, co := range cq.Options {
			order := co.Order
			if order == 0 {
				order = j + 1
			}
			q.Options = append(q.Options, &Option{
				ID:           uuid.New(),
				QuestionID:   q.ID,
				Text:         co.Text,
				Score:        co.Score,
				DisplayOrder: order,
			})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func genderPtr(g Gender) *Gender         { return &g }
func kindPtr(k NumericKind) *NumericKind { return &k }

// DefaultCatalog is the built-in infertility questionnaire, used when no
// dataset file is configured.
func DefaultCatalog() []*Question {
	cat := Catalog{
		Version: 1,
		Questions: []CatalogQuestion{
			{
				Text: "How long have you been trying to conceive?",
				Type: QuestionTypeSingleChoice, Order: 1,
				Options: []CatalogOption{
					{Text: "Less than 6 months", Score: 1, Order: 1},
					{Text: "6-12 months", Score: 3, Order: 2},
					{Text: "1-2 years", Score: 5, Order: 3},
					{Text: "More than 2 years", Score: 8, Order: 4},
				},
			},
			{
				Text: "What is your current age?",
				Type: QuestionTypeNumber, NumericKind: kindPtr(NumericAge), Order: 2,
			},
			{
				Text: "Is your menstrual cycle regular?",
				Type: QuestionTypeSingleChoice, Gender: genderPtr(GenderFemale), Order: 3,
				Options: []CatalogOption{
					{Text: "Very regular (28-30 days)", Score: 1, Order: 1},
					{Text: "Fairly regular", Score: 2, Order: 2},
					{Text: "Irregular", Score: 5, Order: 3},
					{Text: "Very irregular or absent", Score: 8, Order: 4},
				},
			},
			{
				Text: "Do you have a history of gynecological conditions?",
				Type: QuestionTypeMultipleChoice, Gender: genderPtr(GenderFemale), Order: 4,
				Options: []CatalogOption{
					{Text: "Endometriosis", Score: 6, Order: 1},
					{Text: "Polycystic ovary syndrome", Score: 5, Order: 2},
					{Text: "Uterine fibroids", Score: 4, Order: 3},
					{Text: "Gynecological infections", Score: 3, Order: 4},
					{Text: "None", Score: 0, Order: 5},
				},
			},
			{
				Text: "Do you smoke?",
				Type: QuestionTypeSingleChoice, Order: 5,
				Options: []CatalogOption{
					{Text: "No", Score: 0, Order: 1},
					{Text: "Occasionally", Score: 2, Order: 2},
					{Text: "Regularly", Score: 5, Order: 3},
				},
			},
			{
				Text: "What is your BMI (body mass index)?",
				Type: QuestionTypeNumber, NumericKind: kindPtr(NumericBMI), Order: 6,
			},
			{
				Text: "Have you had pelvic surgery?",
				Type: QuestionTypeSingleChoice, Order: 7,
				Options: []CatalogOption{
					{Text: "No", Score: 0, Order: 1},
					{Text: "Yes", Score: 4, Order: 2},
				},
			},
			{
				Text: "How often do you have sexual intercourse?",
				Type: QuestionTypeSingleChoice, Order: 8,
				Options: []CatalogOption{
					{Text: "2-3 times per week", Score: 0, Order: 1},
					{Text: "Once a week", Score: 2, Order: 2},
					{Text: "Less than once a week", Score: 4, Order: 3},
				},
			},
		},
	}
	data, _ := json.Marshal(cat)
	questions, _ := ParseCatalog(data)
	return questions
}
