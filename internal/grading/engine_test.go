package grading

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		correct []string
		given   []string
		want    bool
	}{
		{name: "single exact", correct: []string{"q1o1"}, given: []string{"q1o1"}, want: true},
		{name: "single wrong", correct: []string{"q1o1"}, given: []string{"q1o2"}, want: false},
		{name: "multi any order", correct: []string{"a", "d"}, given: []string{"d", "a"}, want: true},
		{name: "missing one", correct: []string{"a", "d"}, given: []string{"a"}, want: false},
		{name: "extra one", correct: []string{"a", "d"}, given: []string{"a", "d", "b"}, want: false},
		{name: "same size different members", correct: []string{"a", "b"}, given: []string{"a", "c"}, want: false},
		{name: "nil given", correct: []string{"a"}, given: nil, want: false},
		{name: "empty given", correct: []string{"a"}, given: []string{}, want: false},
		{name: "duplicate selections", correct: []string{"a", "b"}, given: []string{"a", "b", "a"}, want: true},
		{name: "both empty", correct: nil, given: nil, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Matches(tc.correct, tc.given))
		})
	}
}

func TestMatchesProperties(t *testing.T) {
	sets := [][]string{
		nil,
		{"a"},
		{"b"},
		{"a", "b"},
		{"b", "a"},
		{"a", "b", "c"},
		{"x", "y", "z"},
	}
	for _, a := range sets {
		for _, b := range sets {
			assert.Equal(t, Matches(a, b), Matches(b, a), "symmetry %v %v", a, b)
			if len(a) != len(b) {
				assert.False(t, Matches(a, b), "size mismatch %v %v", a, b)
			}
		}
		if len(a) > 0 {
			assert.True(t, Matches(a, a), "reflexive %v", a)
		}
	}
}

func sampleQuestion() []Question {
	return []Question{{ID: "q1", Correct: []string{"q1o1"}}}
}

func TestComputeSingleQuestion(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string][]string
		want    float64
	}{
		{name: "correct", answers: map[string][]string{"q1": {"q1o1"}}, want: 100},
		{name: "wrong", answers: map[string][]string{"q1": {"q1o2"}}, want: 0},
		{name: "no answer", answers: map[string][]string{}, want: 0},
		{name: "nil answers", answers: nil, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(sampleQuestion(), tc.answers)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeHalfCorrect(t *testing.T) {
	questions := []Question{
		{ID: "q1", Correct: []string{"a"}},
		{ID: "q2", Correct: []string{"b", "c"}},
		{ID: "q3", Correct: []string{"d"}},
		{ID: "q4", Correct: []string{"e", "f"}},
	}
	answers := map[string][]string{
		"q1": {"a"},
		"q2": {"c", "b"},
		"q3": {"x"},
		"q4": {"e"},
	}

	res, err := Grade(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Score)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, map[string]bool{"q1": true, "q2": true, "q3": false, "q4": false}, res.PerQuestion)
}

func TestMissingAnswerEqualsEmptySelection(t *testing.T) {
	questions := []Question{
		{ID: "q1", Correct: []string{"a"}},
		{ID: "q2", Correct: []string{"b"}},
	}
	missing, err := Compute(questions, map[string][]string{"q1": {"a"}})
	require.NoError(t, err)
	empty, err := Compute(questions, map[string][]string{"q1": {"a"}, "q2": {}})
	require.NoError(t, err)
	assert.Equal(t, missing, empty)
}

func TestComputeDeterministicAndBounded(t *testing.T) {
	questions := []Question{
		{ID: "q1", Correct: []string{"a"}},
		{ID: "q2", Correct: []string{"b"}},
		{ID: "q3", Correct: []string{"c"}},
	}
	answers := map[string][]string{"q1": {"a"}, "q3": {"c", "z"}}

	first, err := Compute(questions, answers)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Compute(questions, answers)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.GreaterOrEqual(t, first, 0.0)
	assert.LessOrEqual(t, first, 100.0)
	assert.InDelta(t, 100.0/3, first, 1e-9)
}

func TestComputeInvalidTest(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
	}{
		{name: "no questions", questions: nil},
		{name: "no correct answers", questions: []Question{{ID: "q1"}}},
		{name: "duplicate ids", questions: []Question{
			{ID: "q1", Correct: []string{"a"}},
			{ID: "q1", Correct: []string{"b"}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(tc.questions, map[string][]string{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTest), "got %v", err)
			assert.False(t, math.IsNaN(got))
			assert.Zero(t, got)
		})
	}
}
