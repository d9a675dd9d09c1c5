package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-quiz/internal/db"
)

func newService(t *testing.T) *Service {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	return NewService(NewSQLStore(dbh), bcrypt.MinCost)
}

func TestSignupAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.Signup(ctx, "Ada", " Ada@Example.com ", "s3cret", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ADA@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "555-0100", got.PhoneNumber)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Signup(ctx, "A", "a@example.com", "pw", "")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "B", "A@example.com", "pw2", "")
	assert.True(t, errors.Is(err, ErrEmailTaken), "got %v", err)
}

func TestSignupMissingFields(t *testing.T) {
	svc := newService(t)
	_, err := svc.Signup(context.Background(), "A", "", "pw", "")
	assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)
	_, err = svc.Signup(context.Background(), "A", "a@example.com", "", "")
	assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)
}

func TestUpdatePhone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.Signup(ctx, "A", "a@example.com", "pw", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdatePhone(ctx, u.ID, " 555-0199 "))

	got, err := svc.Authenticate(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "555-0199", got.PhoneNumber)

	err = svc.UpdatePhone(ctx, "missing", "1")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("duplicate key value violates unique constraint")))
	assert.False(t, isUniqueViolation(nil))

	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	insert := `INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1,'n',$2,'h',0)`
	_, err = dbh.ExecContext(ctx, insert, "u1", "a@example.com")
	require.NoError(t, err)
	_, err = dbh.ExecContext(ctx, insert, "u2", "a@example.com")
	assert.True(t, isUniqueViolation(err), "got %v", err)
	_, err = dbh.ExecContext(ctx, insert, "u1", "b@example.com")
	assert.True(t, isUniqueViolation(err), "got %v", err)
}

func TestAuthenticateUnknownEmailComparesDummyHash(t *testing.T) {
	svc := newService(t)

	cost, err := bcrypt.Cost(svc.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, svc.cost, cost)

	_, err = svc.Authenticate(context.Background(), "ghost@example.com", "pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)
}
