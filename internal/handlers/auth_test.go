package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/shopfront/apiserver/types"
)

var testSecret = []byte("test-signing-secret")

func TestIssueAndParseTokenRoundTrip(t *testing.T) {
	user := types.User{ID: 12, Username: "mock_u", PasswordDigest: "never-embedded"}

	token, err := issueToken(user, testSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := parseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != strconv.Itoa(user.ID) {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.Username != user.Username {
		t.Fatalf("unexpected username claim: %q", claims.Username)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("tokens must not carry an expiry, got %v", claims.ExpiresAt)
	}
	if strings.Contains(token, user.PasswordDigest) {
		t.Fatalf("token must not embed the password digest")
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := issueToken(types.User{ID: 1, Username: "mock_u"}, testSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Flip one character of the signature.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	if _, err := parseToken(string(tampered), testSecret); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := issueToken(types.User{ID: 1, Username: "mock_u"}, testSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := parseToken(token, []byte("other-secret")); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestRequireAuth(t *testing.T) {
	var gotUserID int
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromContext(r.Context())
		if err != nil {
			t.Errorf("subject missing from context: %v", err)
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	guarded := requireAuth(testSecret)(inner)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}

	token, err := issueToken(types.User{ID: 42, Username: "mock_u"}, testSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}
	if gotUserID != 42 {
		t.Fatalf("expected subject 42 in context, got %d", gotUserID)
	}
}

func TestAuthenticateEndpoint(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Create(context.Background(), types.NewUser{
		FirstName: "mock",
		LastName:  "name",
		Username:  "mock_u",
		Password:  "mock_pass",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	handler := NewAuthHandler(svc, string(testSecret))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/authenticate", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Authenticate(rec, req)
		return rec
	}

	rec := post(`{"user_name":"mock_u","password":"mock_pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var token string
	if err := json.NewDecoder(rec.Body).Decode(&token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	claims, err := parseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Username != "mock_u" {
		t.Fatalf("unexpected username claim: %q", claims.Username)
	}

	wrongPass := post(`{"user_name":"mock_u","password":"wrong"}`)
	unknownUser := post(`{"user_name":"nobody","password":"mock_pass"}`)
	if wrongPass.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both failure modes, got %d and %d", wrongPass.Code, unknownUser.Code)
	}
	if wrongPass.Body.String() != unknownUser.Body.String() {
		t.Fatalf("failure responses must be indistinguishable: %q vs %q", wrongPass.Body.String(), unknownUser.Body.String())
	}
}
