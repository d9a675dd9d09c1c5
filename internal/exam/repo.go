package exam

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

var (
	ErrNotFound    = errors.New("test not found")
	ErrStorage     = errors.New("storage error")
	ErrInvalidTest = grading.ErrInvalidTest
)

// TestRepository supplies published tests by id.
type TestRepository interface {
	FetchByID(ctx context.Context, testID string) (Test, error) // ErrNotFound when unknown
	PutTest(ctx context.Context, t Test) error                  // upsert by id
	ListTests(ctx context.Context) ([]TestSummary, error)
}

// SubmissionRecorder persists scored submissions.
type SubmissionRecorder interface {
	Save(ctx context.Context, s Submission) (string, error) // wraps ErrStorage on failure
	ListSubmissions(ctx context.Context, userID string) ([]Submission, error)
}

// Store is implemented by every backend; each serves both roles.
type Store interface {
	TestRepository
	SubmissionRecorder
}

// storageErr tags err as a persistence failure while keeping the driver
// error in the chain.
func storageErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrapped{sentinel: ErrStorage, err: errors.Wrap(err, msg)}
}

type wrapped struct {
	sentinel error
	err      error
}

func (w *wrapped) Error() string { return w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
func (w *wrapped) Is(target error) bool {
	return target == w.sentinel
}
