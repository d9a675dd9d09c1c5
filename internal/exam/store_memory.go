package exam

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

type memoryStore struct {
	mu          sync.RWMutex
	tests       map[string]Test
	submissions map[string]Submission
	order       []string // submission ids in save order
}

func NewInMemoryStore() Store {
	return &memoryStore{
		tests:       map[string]Test{},
		submissions: map[string]Submission{},
	}
}

func (m *memoryStore) PutTest(_ context.Context, t Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tests[t.TestID] = cloneTest(t)
	return nil
}

func (m *memoryStore) FetchByID(_ context.Context, testID string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[testID]
	if !ok {
		return Test{}, errors.Wrapf(ErrNotFound, "test %q", testID)
	}
	return cloneTest(t), nil
}

func (m *memoryStore) ListTests(_ context.Context) ([]TestSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TestSummary, 0, len(m.tests))
	for _, t := range m.tests {
		out = append(out, t.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TestID < out[j].TestID })
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, s Submission) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.submissions[s.ID]; dup {
		return "", storageErr(errors.New("duplicate submission id"), "save submission "+s.ID)
	}
	m.submissions[s.ID] = s
	m.order = append(m.order, s.ID)
	return s.ID, nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, userID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Submission
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.submissions[m.order[i]]
		if userID == "" || s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

// cloneTest copies the slices so callers cannot mutate stored tests.
func cloneTest(t Test) Test {
	out := Test{TestID: t.TestID, TestName: t.TestName, Questions: make([]Question, len(t.Questions))}
	for i, q := range t.Questions {
		q.Options = append([]Option(nil), q.Options...)
		q.CorrectAnswers = append([]string(nil), q.CorrectAnswers...)
		out.Questions[i] = q
	}
	return out
}
