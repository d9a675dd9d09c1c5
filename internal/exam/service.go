package exam

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

// Service runs the submit flow over injected collaborators.
type Service struct {
	tests       TestRepository
	submissions SubmissionRecorder
	score       func(Test, map[string][]string) (float64, error)
	now         func() time.Time
	newID       func() string
}

func NewService(tests TestRepository, submissions SubmissionRecorder) *Service {
	return &Service{
		tests:       tests,
		submissions: submissions,
		score:       gradeTest,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

// GetTest returns the student-facing view of a test.
func (s *Service) GetTest(ctx context.Context, testID string) (Test, error) {
	t, err := s.tests.FetchByID(ctx, strings.TrimSpace(testID))
	if err != nil {
		return Test{}, err
	}
	return t.Public(), nil
}

func (s *Service) ListTests(ctx context.Context) ([]TestSummary, error) {
	return s.tests.ListTests(ctx)
}

// PublishTest validates and stores a test, replacing any with the same id.
func (s *Service) PublishTest(ctx context.Context, t Test) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tests.PutTest(ctx, t)
}

// SubmitTest scores answers against the stored test and records the result.
// The test lookup completes before scoring starts; repository and recorder
// errors are returned unchanged.
func (s *Service) SubmitTest(ctx context.Context, userID, testID string, answers map[string][]string) (Submission, error) {
	t, err := s.tests.FetchByID(ctx, testID)
	if err != nil {
		return Submission{}, err
	}

	score, err := s.score(t, answers)
	if err != nil {
		return Submission{}, err
	}

	if answers == nil {
		answers = map[string][]string{}
	}
	sub := Submission{
		ID:          s.newID(),
		UserID:      userID,
		TestID:      testID,
		Answers:     answers,
		Score:       score,
		SubmittedAt: s.now(),
	}
	id, err := s.submissions.Save(ctx, sub)
	if err != nil {
		return Submission{}, err
	}
	sub.ID = id

	slog.InfoContext(ctx, "test submitted",
		slog.String("submission_id", sub.ID),
		slog.String("user_id", userID),
		slog.String("test_id", testID),
		slog.Float64("score", sub.Score),
	)
	return sub, nil
}

func (s *Service) ListSubmissions(ctx context.Context, userID string) ([]Submission, error) {
	return s.submissions.ListSubmissions(ctx, userID)
}

// gradeTest re-checks the stored test, since tests may reach a store
// without passing through PublishTest.
func gradeTest(t Test, answers map[string][]string) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	return grading.Compute(t.gradingQuestions(), answers)
}
