package screen

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/orders"
	"github.com/gympro/gympro-client/internal/domain/plans"
	"github.com/gympro/gympro-client/internal/domain/supplements"
	"github.com/gympro/gympro-client/internal/storage"
)

type backend struct {
	mu    sync.Mutex
	calls []string
	srv   *httptest.Server
}

func newBackend(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *backend {
	t.Helper()
	b := &backend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.calls = append(b.calls, key)
		b.mu.Unlock()
		h, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) client() *api.Client { return api.New(b.srv.URL, storage.NewMemory()) }

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == key {
			n++
		}
	}
	return n
}

func body(s string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, s) }
}

const membersJSON = `[
 {"id":"m1","name":"Asha","email":"asha@gym.in","phone":"111","plan_id":"p1","status":"active","due_amount":0,"paid_amount":999},
 {"id":"m2","name":"Ravi","email":"ravi@gym.in","phone":"222","plan_id":"p2","status":"expired","due_amount":500,"paid_amount":0},
 {"id":"m3","name":"Meera","email":"meera@gym.in","phone":"333","plan_id":"gone","status":"active","due_amount":0,"paid_amount":0}
]`

const plansJSON = `[{"id":"p1","name":"Basic","duration":1,"price":999,"features":[]},{"id":"p2","name":"Gold","duration":3,"price":2499,"features":["Sauna"]}]`

func TestMembersLoadSearchAndDelete(t *testing.T) {
	b := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /members":       body(membersJSON),
		"GET /plans":         body(plansJSON),
		"DELETE /members/m2": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
	})
	c := b.client()
	s := NewMembers(context.Background(), members.NewService(c), plans.NewService(c), nil)
	defer s.Close()

	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	rows := s.Search("", "")
	if len(rows) != 3 || rows[1].PlanName != "Gold" || rows[2].PlanName != "-" {
		t.Fatalf("rows = %+v", rows)
	}
	if got := s.Search("", members.StatusExpired); len(got) != 1 || got[0].ID != "m2" {
		t.Fatalf("expired filter = %+v", got)
	}
	if got := s.Search("MEE", ""); len(got) != 1 || got[0].ID != "m3" {
		t.Fatalf("search = %+v", got)
	}

	if err := s.Delete("m2", func(string) bool { return false }, "Delete Ravi?"); !errors.Is(err, ErrDeclined) {
		t.Fatalf("declined delete err = %v", err)
	}
	if b.count("DELETE /members/m2") != 0 {
		t.Fatal("DELETE sent without confirmation")
	}

	if err := s.Delete("m2", func(string) bool { return true }, "Delete Ravi?"); err != nil {
		t.Fatal(err)
	}
	if b.count("DELETE /members/m2") != 1 {
		t.Fatalf("DELETE calls = %d", b.count("DELETE /members/m2"))
	}
	items := s.Items()
	if len(items) != 2 || items[0].ID != "m1" || items[1].ID != "m3" {
		t.Fatalf("items after delete = %+v", items)
	}
	if b.count("GET /members") != 1 {
		t.Fatal("delete should not re-fetch")
	}
}

func TestLoadFailsAsAWhole(t *testing.T) {
	b := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /members": body(membersJSON),
		"GET /plans":   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
	})
	c := b.client()
	s := NewMembers(context.Background(), members.NewService(c), plans.NewService(c), nil)
	defer s.Close()

	err := s.Load()
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("err = %v", err)
	}
	if len(s.Items()) != 0 || len(s.Plans()) != 0 {
		t.Fatal("partial results committed")
	}
}

func TestSaveRefetches(t *testing.T) {
	b := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /plans":    body(plansJSON),
		"POST /plans":   body(`{"id":"p3","name":"Platinum","duration":12,"price":9999,"features":[]}`),
		"PUT /plans/p1": body(`{"id":"p1","name":"Basic+","duration":1,"price":1099,"features":[]}`),
	})
	s := NewPlans(context.Background(), plans.NewService(b.client()), nil)
	defer s.Close()

	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	p, _ := s.Find("p2")
	if err := s.Save("", p.Form()); err != nil {
		t.Fatal(err)
	}
	p1, _ := s.Find("p1")
	if err := s.Save("p1", p1.Form()); err != nil {
		t.Fatal(err)
	}
	if b.count("GET /plans") != 3 || b.count("POST /plans") != 1 || b.count("PUT /plans/p1") != 1 {
		t.Fatalf("calls = %v", b.calls)
	}
}

func TestClosedScreenDiscardsLateResults(t *testing.T) {
	release := make(chan struct{})
	b := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /plans": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
			_, _ = io.WriteString(w, plansJSON)
		},
	})
	defer close(release)

	s := NewPlans(context.Background(), plans.NewService(b.client()), nil)
	done := make(chan error, 1)
	go func() { done <- s.Load() }()

	time.Sleep(50 * time.Millisecond)
	s.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Load did not return after Close")
	}
	if len(s.Items()) != 0 {
		t.Fatal("closed screen received data")
	}
}

func TestStoreOrderFlow(t *testing.T) {
	var orderBody string
	b := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /supplements": body(`[{"id":"s1","name":"Whey","price":2000,"stock":3,"category":"Protein"},{"id":"s2","name":"Creatine","price":800,"stock":0,"category":"Performance"}]`),
		"POST /orders": func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			orderBody = string(raw)
			_, _ = io.WriteString(w, `{"id":"o1","member_id":"m1","items":[],"total":4000,"status":"placed","payment_status":"pending"}`)
		},
	})
	c := b.client()
	s := NewStore(context.Background(), supplements.NewService(c), orders.NewService(c), nil)
	defer s.Close()

	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("s1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("s1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("s2"); err == nil {
		t.Fatal("out of stock item added")
	}
	o, err := s.PlaceOrder("m1")
	if err != nil {
		t.Fatal(err)
	}
	if o.ID != "o1" || !s.Cart.Empty() {
		t.Fatalf("order = %+v, cart empty = %v", o, s.Cart.Empty())
	}
	for _, want := range []string{`"member_id":"m1"`, `"supplement_id":"s1"`, `"quantity":2`, `"total":4000`} {
		if !strings.Contains(orderBody, want) {
			t.Errorf("order body %s missing %s", orderBody, want)
		}
	}
	if b.count("GET /supplements") != 2 {
		t.Fatal("catalog not reloaded after order")
	}
}

func TestSupplementsFilter(t *testing.T) {
	b := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /supplements": body(`[{"id":"s1","name":"Whey Gold","price":2000,"stock":3,"category":"Protein"},{"id":"s2","name":"Creatine","price":800,"stock":0,"category":"Performance"},{"id":"s3","name":"Casein","price":2100,"stock":2,"category":"Protein"}]`),
	})
	s := NewSupplements(context.Background(), supplements.NewService(b.client()), nil)
	defer s.Close()
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if got := s.Filter("", "Protein"); len(got) != 2 {
		t.Fatalf("category filter = %+v", got)
	}
	if got := s.Filter("whey", ""); len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("name filter = %+v", got)
	}
	if cats := s.Categories(); len(cats) != 2 || cats[0] != "Performance" {
		t.Fatalf("categories = %v", cats)
	}
}
