package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingField       = errors.New("missing required field")
)

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	PhoneNumber  string    `json:"phone_number,omitempty" bson:"phone_number"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Store returns ErrEmailTaken on a duplicate email and ErrNotFound for
// unknown users.
type Store interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	UpdatePhone(ctx context.Context, id, phone string) error
}

type Service struct {
	store Store
	cost  int
	// dummyHash is compared against for unknown emails so that lookup
	// misses cost the same bcrypt work as wrong passwords.
	dummyHash []byte
}

func NewService(store Store, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		panic(err) // only fails for an out-of-range cost, excluded above
	}
	return &Service{store: store, cost: bcryptCost, dummyHash: dummy}
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *Service) Signup(ctx context.Context, name, email, password, phone string) (User, error) {
	email = normEmail(email)
	if email == "" || password == "" {
		return User{}, errors.Wrap(ErrMissingField, "email and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}
	u := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(phone),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate does not distinguish an unknown email from a bad password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.store.FindByEmail(ctx, normEmail(email))
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) UpdatePhone(ctx context.Context, userID, phone string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrNotFound
	}
	return s.store.UpdatePhone(ctx, userID, strings.TrimSpace(phone))
}
