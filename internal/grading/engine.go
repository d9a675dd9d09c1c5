package grading

import (
	"github.com/pkg/errors"
)

// ErrInvalidTest is returned when a test cannot be scored: it has no
// questions, a question carries no correct answers, or question ids repeat.
var ErrInvalidTest = errors.New("invalid test")

// Question is a minimal view of a question needed for scoring.
// Keep this in sync with exam.Question.
type Question struct {
	ID      string
	Correct []string // option ids that make up a fully correct response
}

// Result is the outcome of scoring one submission.
type Result struct {
	Score       float64         // 0..100
	Correct     int             // questions answered with an exact match
	Total       int             // questions in the test
	PerQuestion map[string]bool // questionID -> matched
}

// Matches reports whether given selects exactly the correct option set.
// Order and duplicates are ignored; a nil given is the empty selection.
// There is no partial credit.
func Matches(correct, given []string) bool {
	return setEqual(toSet(correct), toSet(given))
}

// Grade scores answers against questions. Answers missing for a question
// count as an empty selection, never as an error.
func Grade(questions []Question, answers map[string][]string) (Result, error) {
	if len(questions) == 0 {
		return Result{}, errors.Wrap(ErrInvalidTest, "test has no questions")
	}
	res := Result{
		Total:       len(questions),
		PerQuestion: make(map[string]bool, len(questions)),
	}
	for _, q := range questions {
		if len(q.Correct) == 0 {
			return Result{}, errors.Wrapf(ErrInvalidTest, "question %q has no correct answers", q.ID)
		}
		if _, dup := res.PerQuestion[q.ID]; dup {
			return Result{}, errors.Wrapf(ErrInvalidTest, "duplicate question id %q", q.ID)
		}
		ok := Matches(q.Correct, answers[q.ID])
		res.PerQuestion[q.ID] = ok
		if ok {
			res.Correct++
		}
	}
	res.Score = 100 * float64(res.Correct) / float64(res.Total)
	return res, nil
}

// Compute returns only the percentage score of Grade.
func Compute(questions []Question, answers map[string][]string) (float64, error) {
	res, err := Grade(questions, answers)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// helpers

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
