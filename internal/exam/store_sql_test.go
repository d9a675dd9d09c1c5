package exam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-quiz/internal/db"
	syncx "github.com/mind-engage/mindengage-quiz/internal/sync"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	return NewSQLStore(dbh)
}

func TestSQLStoreTests(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.FetchByID(ctx, SampleTestID)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	require.NoError(t, SeedSample(ctx, s))
	require.NoError(t, SeedSample(ctx, s)) // upsert, not duplicate

	got, err := s.FetchByID(ctx, SampleTestID)
	require.NoError(t, err)
	assert.Equal(t, SampleTest(), got)

	list, err := s.ListTests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TestSummary{{TestID: SampleTestID, TestName: "Sample Test 1", QuestionCount: 1}}, list)
}

func TestSQLStoreSubmitFlow(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	require.NoError(t, SeedSample(ctx, s))

	svc := NewService(s, s)
	svc.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }

	sub, err := svc.SubmitTest(ctx, "u1", SampleTestID, map[string][]string{"q1": {"q1o1"}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, sub.Score)
	assert.NotEmpty(t, sub.ID)

	_, err = svc.SubmitTest(ctx, "u2", SampleTestID, map[string][]string{"q1": {"q1o3"}})
	require.NoError(t, err)

	mine, err := s.ListSubmissions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, sub, mine[0])

	all, err := s.ListSubmissions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	events, err := syncx.NewEventRepo(s.db).Since(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, syncx.TypeTestSubmitted, events[0].Type)
	assert.Equal(t, sub.ID, events[0].Key)
	assert.JSONEq(t, `{"user_id":"u1","test_id":"sample-test-1","score":100}`, events[0].DataJSON)
}

func TestSQLStoreSaveDuplicateIsStorageError(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	require.NoError(t, SeedSample(ctx, s))

	sub := Submission{ID: "dup", UserID: "u1", TestID: SampleTestID, Answers: map[string][]string{}, SubmittedAt: time.Now()}
	_, err := s.Save(ctx, sub)
	require.NoError(t, err)
	_, err = s.Save(ctx, sub)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage), "got %v", err)

	// the failed transaction must not leave an orphan event behind
	events, err := syncx.NewEventRepo(s.db).Since(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSQLStoreCorruptRows(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.db.ExecContext(ctx, `INSERT INTO tests (id,name,questions_json,created_at) VALUES ('bad','Bad','{not json',0)`)
	require.NoError(t, err)
	_, err = s.ListTests(ctx)
	assert.True(t, errors.Is(err, ErrInvalidTest), "got %v", err)
	_, err = s.FetchByID(ctx, "bad")
	assert.True(t, errors.Is(err, ErrInvalidTest), "got %v", err)

	_, err = s.db.ExecContext(ctx, `DELETE FROM tests WHERE id='bad'`)
	require.NoError(t, err)
	require.NoError(t, SeedSample(ctx, s))
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions (id,user_id,test_id,answers_json,score,submitted_at)
		VALUES ('s1','u1',$1,'[oops',0,0)`, SampleTestID)
	require.NoError(t, err)
	_, err = s.ListSubmissions(ctx, "u1")
	assert.True(t, errors.Is(err, ErrStorage), "got %v", err)
}
