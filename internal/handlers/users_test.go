package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/apiserver/config"
	"github.com/shopfront/apiserver/internal/services"
	"github.com/shopfront/apiserver/internal/store"
	"github.com/shopfront/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  []types.User
	nextID int
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	return append([]types.User(nil), f.users...), nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return types.User{}, store.ErrDuplicateUsername
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) DeleteByUsername(ctx context.Context, username string) (types.User, error) {
	for i, user := range f.users {
		if user.Username == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func newTestService(t *testing.T) *services.UserService {
	t.Helper()
	return services.NewUserService(&fakeUserRepo{}, config.AuthConfig{
		Pepper:     "test-pepper",
		BcryptCost: bcrypt.MinCost,
	})
}

func newUsersRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := newTestService(t)

	router := chi.NewRouter()
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, svc, string(testSecret), RequireAuth(string(testSecret)))
	})
	return router
}

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	token, err := issueToken(types.User{ID: 1, Username: "seed"}, testSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUserRoutesRequireToken(t *testing.T) {
	router := newUsersRouter(t)

	for _, target := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/mock_u"},
		{http.MethodPost, "/users"},
		{http.MethodDelete, "/users"},
	} {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", target.method, target.path, rec.Code)
		}
	}
}

func TestUserLifecycle(t *testing.T) {
	router := newUsersRouter(t)

	// Signup answers with a signed token for the new user.
	body := []byte(`{"first_name":"mock","last_name":"name","user_name":"mock_u","password":"mock_pass"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/users", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var token string
	if err := json.NewDecoder(rec.Body).Decode(&token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	claims, err := parseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse signup token: %v", err)
	}
	if claims.Username != "mock_u" {
		t.Fatalf("unexpected username claim: %q", claims.Username)
	}

	// Duplicate signup is a client error.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/users", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400, got %d", rec.Code)
	}

	// Listing shows the one user, without the digest.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/users", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list users: expected 200, got %d", rec.Code)
	}
	var listed []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one user, got %d", len(listed))
	}
	if _, leaked := listed[0]["password_digest"]; leaked {
		t.Fatalf("listing leaked the password digest")
	}

	// Unknown username reads as null, not as an error.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/users/nobody", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get unknown user: expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "null\n" {
		t.Fatalf("get unknown user: expected null body, got %q", got)
	}

	// Delete answers with the removed record and is idempotent.
	deleteBody := []byte(`{"user_name":"mock_u"}`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/users", deleteBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete user: expected 200, got %d", rec.Code)
	}
	var removed types.User
	if err := json.NewDecoder(rec.Body).Decode(&removed); err != nil {
		t.Fatalf("decode removed user: %v", err)
	}
	if removed.Username != "mock_u" {
		t.Fatalf("unexpected removed user: %+v", removed)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/users", deleteBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat delete: expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "null\n" {
		t.Fatalf("repeat delete: expected null body, got %q", got)
	}

	// Listing is empty again.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/users", nil))
	var remaining []types.User
	if err := json.NewDecoder(rec.Body).Decode(&remaining); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty listing after delete, got %d", len(remaining))
	}
}
