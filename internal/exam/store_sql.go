package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-quiz/internal/db"
	syncx "github.com/mind-engage/mindengage-quiz/internal/sync"
)

// SQLStore works on sqlite and postgres; queries use $N placeholders,
// which both drivers accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutTest(ctx context.Context, t Test) error {
	qj, err := json.Marshal(t.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tests (id,name,questions_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, questions_json=EXCLUDED.questions_json`,
		t.TestID, t.TestName, string(qj), time.Now().Unix())
	return storageErr(err, "put test "+t.TestID)
}

func (s *SQLStore) FetchByID(ctx context.Context, testID string) (Test, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,questions_json FROM tests WHERE id=$1`, testID)
	var t Test
	var qjson string
	if err := row.Scan(&t.TestID, &t.TestName, &qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Test{}, errors.Wrapf(ErrNotFound, "test %q", testID)
		}
		return Test{}, storageErr(err, "fetch test "+testID)
	}
	if err := json.Unmarshal([]byte(qjson), &t.Questions); err != nil {
		return Test{}, errors.Wrapf(ErrInvalidTest, "decode questions of %q: %v", testID, err)
	}
	return t, nil
}

func (s *SQLStore) ListTests(ctx context.Context) ([]TestSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,questions_json FROM tests ORDER BY id`)
	if err != nil {
		return nil, storageErr(err, "list tests")
	}
	defer rows.Close()
	out := []TestSummary{}
	for rows.Next() {
		var t Test
		var qjson string
		if err := rows.Scan(&t.TestID, &t.TestName, &qjson); err != nil {
			return nil, storageErr(err, "scan test")
		}
		if err := json.Unmarshal([]byte(qjson), &t.Questions); err != nil {
			return nil, errors.Wrapf(ErrInvalidTest, "decode questions of %q: %v", t.TestID, err)
		}
		out = append(out, t.Summary())
	}
	return out, storageErr(rows.Err(), "list tests")
}

// Save stores the submission and its TestSubmitted event in one transaction.
func (s *SQLStore) Save(ctx context.Context, sub Submission) (string, error) {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return "", err
	}
	ev, err := syncx.NewEvent(syncx.TypeTestSubmitted, sub.ID, map[string]any{
		"user_id": sub.UserID,
		"test_id": sub.TestID,
		"score":   sub.Score,
	})
	if err != nil {
		return "", err
	}

	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO submissions (id,user_id,test_id,answers_json,score,submitted_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			sub.ID, sub.UserID, sub.TestID, string(aj), sub.Score, sub.SubmittedAt.Unix()); err != nil {
			return errors.Wrap(err, "insert submission "+sub.ID)
		}
		return errors.Wrap(syncx.Append(ctx, tx, ev), "append event")
	})
	if err != nil {
		return "", storageErr(err, "save submission")
	}
	return sub.ID, nil
}

func (s *SQLStore) ListSubmissions(ctx context.Context, userID string) ([]Submission, error) {
	q := `SELECT id,user_id,test_id,answers_json,score,submitted_at FROM submissions`
	args := []any{}
	if userID != "" {
		q += ` WHERE user_id=$1`
		args = append(args, userID)
	}
	q += ` ORDER BY submitted_at DESC, id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storageErr(err, "list submissions")
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var sub Submission
		var ajson string
		var at int64
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.TestID, &ajson, &sub.Score, &at); err != nil {
			return nil, storageErr(err, "scan submission")
		}
		if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
			return nil, storageErr(err, "decode answers of submission "+sub.ID)
		}
		sub.SubmittedAt = time.Unix(at, 0).UTC()
		out = append(out, sub)
	}
	return out, storageErr(rows.Err(), "list submissions")
}
