package services

import (
	"context"
	"errors"

	"github.com/shopfront/apiserver/config"
	"github.com/shopfront/apiserver/internal/store"
	"github.com/shopfront/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown username and a
// wrong password. Keeping the two cases indistinguishable prevents
// username enumeration.
var ErrInvalidCredentials = errors.New("wrong username or password")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	DeleteByUsername(ctx context.Context, username string) (types.User, error)
}

// UserService is the credential store. It owns hashing and verification;
// the repository underneath is plain SQL and never sees a plaintext
// password.
type UserService struct {
	repo   UserRepository
	pepper string
	cost   int
}

// NewUserService constructs a UserService. The pepper is appended to
// every password before hashing, so a leaked database alone is not
// enough for an offline brute-force. The bcrypt cost comes from config
// and falls back to the library default when out of range.
func NewUserService(repo UserRepository, cfg config.AuthConfig) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:   repo,
		pepper: cfg.Pepper,
		cost:   cost,
	}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Create hashes the password and inserts the user. The existence check
// is a fast path for a friendlier error; the unique index on user_name
// is the authoritative guard, and its violation maps to the same
// ErrDuplicateUsername.
func (s *UserService) Create(ctx context.Context, input types.NewUser) (types.User, error) {
	if _, err := s.repo.GetByUsername(ctx, input.Username); err == nil {
		return types.User{}, store.ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(input.Password+s.pepper), s.cost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Username:       input.Username,
		PasswordDigest: string(digest),
	})
}

// Delete removes the user by username and returns the removed record.
// A missing username yields store.ErrNotFound, which callers treat as
// an empty result; the delete is idempotent.
func (s *UserService) Delete(ctx context.Context, username string) (types.User, error) {
	return s.repo.DeleteByUsername(ctx, username)
}

// Authenticate verifies the password against the stored digest and
// returns the persisted user on success. Unknown usernames and wrong
// passwords both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	// bcrypt's comparison is constant-time over the digest.
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordDigest),
		[]byte(password+s.pepper),
	); err != nil {
		return types.User{}, ErrInvalidCredentials
	}

	return user, nil
}
