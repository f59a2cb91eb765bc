package members

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/storage"
)

func TestDeleteIssuesOneCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodDelete || r.URL.Path != "/members/m42" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewService(api.New(srv.URL, storage.NewMemory()))
	if err := s.Delete(context.Background(), "m42"); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request issued for invalid form")
	}))
	defer srv.Close()

	s := NewService(api.New(srv.URL, storage.NewMemory()))
	_, err := s.Create(context.Background(), Form{Name: "No Email"})
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("err = %v", err)
	}
}

func TestListDecodesStatusAndMoney(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"Asha","email":"a@x.in","plan_id":3,"status":"expired","due_amount":1499.5,"paid_amount":0}]`)
	}))
	defer srv.Close()

	ms, err := NewService(api.New(srv.URL, storage.NewMemory())).List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Status != StatusExpired || ms[0].PlanID != "3" || ms[0].DueAmount.String() != "1499.5" {
		t.Fatalf("members = %+v", ms)
	}
}

func TestMatches(t *testing.T) {
	m := Member{Name: "Asha Rao", Email: "asha@gym.in", Phone: "98450"}
	for q, want := range map[string]bool{"": true, "asha": true, "RAO": true, "gym.in": true, "9845": true, "ravi": false} {
		if got := m.Matches(q); got != want {
			t.Errorf("Matches(%q) = %v", q, got)
		}
	}
}
