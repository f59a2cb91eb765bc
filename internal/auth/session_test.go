package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/storage"
)

func fakeBackend(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var c map[string]string
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c["email"] == "owner@gympro.com" && c["password"] == "admin123" {
			_, _ = io.WriteString(w, `{"access_token":"tok-owner","token_type":"bearer","user":{"id":1,"email":"owner@gympro.com","name":"Owner","role":"owner"}}`)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLoginOwner(t *testing.T) {
	srv, _ := fakeBackend(t)
	ctx := context.Background()
	store := storage.NewMemory()
	s := NewSession(api.New(srv.URL, store), store, nil)

	ok, err := s.Login(ctx, "owner@gympro.com", "admin123")
	if err != nil || !ok {
		t.Fatalf("login = %v %v", ok, err)
	}
	u := s.Current()
	if u == nil || u.Role != RoleOwner || u.ID != "1" {
		t.Fatalf("user = %+v", u)
	}
	if tok, _, _ := store.Get(ctx, storage.KeyToken); tok != "tok-owner" {
		t.Fatalf("token = %q", tok)
	}

	// a fresh session restores the same identity from storage
	restored := NewSession(api.New(srv.URL, store), store, nil)
	if err := restored.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if !restored.IsAuthenticated() || restored.Current().Email != "owner@gympro.com" {
		t.Fatalf("restored = %+v", restored.Current())
	}
}

func TestLoginWrongPasswordReturnsFalse(t *testing.T) {
	srv, _ := fakeBackend(t)
	store := storage.NewMemory()
	s := NewSession(api.New(srv.URL, store), store, nil)

	ok, err := s.Login(context.Background(), "owner@gympro.com", "nope")
	if err != nil || ok {
		t.Fatalf("login = %v %v", ok, err)
	}
	if s.IsAuthenticated() {
		t.Fatal("authenticated after rejected login")
	}
}

func TestLoginTransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := storage.NewMemory()
	s := NewSession(api.New(url, store), store, nil)
	ok, err := s.Login(context.Background(), "owner@gympro.com", "admin123")
	if ok || !errors.Is(err, api.ErrTransport) {
		t.Fatalf("login = %v %v", ok, err)
	}
}

func TestLoginValidation(t *testing.T) {
	srv, calls := fakeBackend(t)
	store := storage.NewMemory()
	s := NewSession(api.New(srv.URL, store), store, nil)

	for _, tc := range []struct{ email, password string }{{"", "x"}, {"bad-email", "x"}, {"a@b.co", ""}} {
		_, err := s.Login(context.Background(), tc.email, tc.password)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Login(%q,%q) err = %v", tc.email, tc.password, err)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("validation failures issued %d requests", calls.Load())
	}
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	srv, _ := fakeBackend(t)
	ctx := context.Background()
	store := storage.NewMemory()
	s := NewSession(api.New(srv.URL, store), store, nil)
	if ok, _ := s.Login(ctx, "owner@gympro.com", "admin123"); !ok {
		t.Fatal("login failed")
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Fatal("still authenticated")
	}
	if _, ok, _ := store.Get(ctx, storage.KeyToken); ok {
		t.Fatal("token kept")
	}
}

func TestRestoreDropsExpiredJWT(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	_ = store.Set(ctx, storage.KeyToken, tok)
	_ = store.Set(ctx, storage.KeyUser, `{"id":"1","email":"m@gym.in","name":"M","role":"member"}`)

	s := NewSession(api.New("http://unused", store), store, nil)
	if err := s.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Fatal("expired token restored")
	}
	if _, ok, _ := store.Get(ctx, storage.KeyUser); ok {
		t.Fatal("identity not cleared")
	}
}

func TestRestoreKeepsOpaqueToken(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	_ = store.Set(ctx, storage.KeyToken, "opaque-session-token")
	_ = store.Set(ctx, storage.KeyUser, `{"id":"9","email":"m@gym.in","name":"M","role":"member"}`)

	s := NewSession(api.New("http://unused", store), store, nil)
	if err := s.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if u := s.Current(); u == nil || u.Role != RoleMember {
		t.Fatalf("user = %+v", u)
	}
}

func TestRegisterPasswordMismatchSendsNothing(t *testing.T) {
	srv, calls := fakeBackend(t)
	store := storage.NewMemory()
	s := NewSession(api.New(srv.URL, store), store, nil)

	err := s.Register(context.Background(), RegisterForm{Name: "A", Email: "a@gym.in", Password: "secret1", ConfirmPassword: "secret2"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "confirmPassword" {
		t.Fatalf("err = %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("request issued")
	}

	if err := s.Register(context.Background(), RegisterForm{Name: "A", Email: "a@gym.in", Password: "secret1", ConfirmPassword: "secret1"}); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestChangePasswordRules(t *testing.T) {
	s := NewSession(api.New("http://unused", storage.NewMemory()), storage.NewMemory(), nil)
	var ve *ValidationError
	if err := s.ChangePassword(context.Background(), "", "newpass", "newpass"); !errors.As(err, &ve) {
		t.Errorf("missing current: %v", err)
	}
	if err := s.ChangePassword(context.Background(), "same12", "same12", "same12"); !errors.As(err, &ve) {
		t.Errorf("same password: %v", err)
	}
	if err := s.ChangePassword(context.Background(), "old123", "abc", "abc"); !errors.As(err, &ve) {
		t.Errorf("short password: %v", err)
	}
}
