package attendance

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/storage"
)

func TestComputePresence(t *testing.T) {
	day := "2026-10-14"
	records := []Record{
		{MemberID: "a", Date: day},
		{MemberID: "a", Date: day}, // second visit same day
		{MemberID: "b", Date: day},
		{MemberID: "c", Date: "2026-10-13"},
		{MemberID: "x", Date: day}, // not active
	}
	p := ComputePresence([]api.ID{"a", "b", "c"}, records, day)
	if p.Active != 3 || p.Present != 2 || p.Absent != 1 || p.Rate != 67 {
		t.Fatalf("presence = %+v", p)
	}
}

func TestComputePresenceNoActiveMembers(t *testing.T) {
	p := ComputePresence(nil, []Record{{MemberID: "a", Date: "2026-10-14"}}, "2026-10-14")
	if p.Rate != 0 || p.Present != 0 || p.Absent != 0 {
		t.Fatalf("presence = %+v", p)
	}
}

func TestCheckOutPostsToRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/attendance/r9/checkout" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"id":"r9","member_id":"a","date":"2026-10-14","check_in":"07:10","check_out":"08:30"}`)
	}))
	defer srv.Close()

	s := NewService(api.New(srv.URL, storage.NewMemory()))
	rec, err := s.CheckOut(context.Background(), Record{ID: "r9"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Open() || *rec.CheckOut != "08:30" {
		t.Fatalf("record = %+v", rec)
	}

	if _, err := s.CheckOut(context.Background(), rec); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("second checkout err = %v", err)
	}
}

func TestListPassesDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != "2026-10-14" {
			t.Errorf("date = %q", r.URL.Query().Get("date"))
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	if _, err := NewService(api.New(srv.URL, storage.NewMemory())).List(context.Background(), "2026-10-14"); err != nil {
		t.Fatal(err)
	}
}
