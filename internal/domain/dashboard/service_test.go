package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/storage"
)

func TestStatsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"total_members":40,"active_members":31,"monthly_revenue":125000.50,"today_attendance":12}`)
	}))
	defer srv.Close()

	st, err := NewService(api.New(srv.URL, storage.NewMemory())).Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalMembers != 40 || st.ActiveMembers != 31 || st.TodayAttendance != 12 {
		t.Fatalf("stats = %+v", st)
	}
	if st.MonthlyRevenue.String() != "125000.5" {
		t.Fatalf("revenue = %s", st.MonthlyRevenue)
	}
}

func TestStatsErrorReturnsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"detail":"down"}`)
	}))
	defer srv.Close()

	st, err := NewService(api.New(srv.URL, storage.NewMemory())).Stats(context.Background())
	if err == nil || st != (Stats{}) {
		t.Fatalf("stats = %+v %v", st, err)
	}
}
