package exam

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCopiesTests(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, SeedSample(ctx, s))

	got, err := s.FetchByID(ctx, SampleTestID)
	require.NoError(t, err)
	got.Questions[0].CorrectAnswers[0] = "q1o2"

	again, err := s.FetchByID(ctx, SampleTestID)
	require.NoError(t, err)
	assert.Equal(t, SampleTest(), again)
}

func TestMemoryStoreSubmissions(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	for _, sub := range []Submission{
		{ID: "a", UserID: "u1", TestID: "t"},
		{ID: "b", UserID: "u2", TestID: "t"},
		{ID: "c", UserID: "u1", TestID: "t"},
	} {
		_, err := s.Save(ctx, sub)
		require.NoError(t, err)
	}

	_, err := s.Save(ctx, Submission{ID: "a"})
	assert.True(t, errors.Is(err, ErrStorage), "got %v", err)

	mine, err := s.ListSubmissions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "c", mine[0].ID)
	assert.Equal(t, "a", mine[1].ID)

	all, err := s.ListSubmissions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
