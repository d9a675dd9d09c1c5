package exam

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

type Option struct {
	OptionID   string `json:"optionId" bson:"optionId"`
	OptionText string `json:"optionText" bson:"optionText"`
	IsCorrect  bool   `json:"isCorrect,omitempty" bson:"isCorrect"`
}

type Question struct {
	QuestionID     string   `json:"questionId" bson:"questionId"`
	QuestionText   string   `json:"questionText" bson:"questionText"`
	Options        []Option `json:"options" bson:"options"`
	CorrectAnswers []string `json:"correctAnswers,omitempty" bson:"correctAnswers,omitempty"`
}

// CorrectSet returns the stored correct answers, or the ids of options
// flagged correct when none are stored.
func (q Question) CorrectSet() []string {
	if len(q.CorrectAnswers) > 0 {
		return q.CorrectAnswers
	}
	var out []string
	for _, o := range q.Options {
		if o.IsCorrect {
			out = append(out, o.OptionID)
		}
	}
	return out
}

type Test struct {
	TestID    string     `json:"testId" bson:"testId"`
	TestName  string     `json:"testName" bson:"testName"`
	Questions []Question `json:"questions" bson:"questions"`
}

type TestSummary struct {
	TestID        string `json:"testId"`
	TestName      string `json:"testName"`
	QuestionCount int    `json:"questionCount"`
}

func (t Test) Summary() TestSummary {
	return TestSummary{TestID: t.TestID, TestName: t.TestName, QuestionCount: len(t.Questions)}
}

// Public is the student-facing copy: correctness data is stripped.
func (t Test) Public() Test {
	out := Test{TestID: t.TestID, TestName: t.TestName, Questions: make([]Question, len(t.Questions))}
	for i, q := range t.Questions {
		opts := make([]Option, len(q.Options))
		for j, o := range q.Options {
			opts[j] = Option{OptionID: o.OptionID, OptionText: o.OptionText}
		}
		out.Questions[i] = Question{QuestionID: q.QuestionID, QuestionText: q.QuestionText, Options: opts}
	}
	return out
}

// Validate checks the invariants a test needs before it can be published:
// at least one question, unique question ids, and a non-empty correct set
// drawn from the question's own options.
func (t Test) Validate() error {
	if t.TestID == "" {
		return errors.Wrap(ErrInvalidTest, "testId required")
	}
	if len(t.Questions) == 0 {
		return errors.Wrap(ErrInvalidTest, "test has no questions")
	}
	seen := make(map[string]struct{}, len(t.Questions))
	for _, q := range t.Questions {
		if q.QuestionID == "" {
			return errors.Wrap(ErrInvalidTest, "questionId required")
		}
		if _, dup := seen[q.QuestionID]; dup {
			return errors.Wrapf(ErrInvalidTest, "duplicate question id %q", q.QuestionID)
		}
		seen[q.QuestionID] = struct{}{}

		correct := q.CorrectSet()
		if len(correct) == 0 {
			return errors.Wrapf(ErrInvalidTest, "question %q has no correct answers", q.QuestionID)
		}
		opts := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			opts[o.OptionID] = struct{}{}
		}
		for _, id := range correct {
			if _, ok := opts[id]; !ok {
				return errors.Wrapf(ErrInvalidTest, "question %q: correct answer %q is not an option", q.QuestionID, id)
			}
		}
	}
	return nil
}

func (t Test) gradingQuestions() []grading.Question {
	out := make([]grading.Question, len(t.Questions))
	for i, q := range t.Questions {
		out[i] = grading.Question{ID: q.QuestionID, Correct: q.CorrectSet()}
	}
	return out
}

type Submission struct {
	ID          string              `json:"id" bson:"_id"`
	UserID      string              `json:"userId" bson:"userId"`
	TestID      string              `json:"testId" bson:"testId"`
	Answers     map[string][]string `json:"answers" bson:"answers"`
	Score       float64             `json:"score" bson:"score"`
	SubmittedAt time.Time           `json:"submittedAt" bson:"submittedAt"`
}
