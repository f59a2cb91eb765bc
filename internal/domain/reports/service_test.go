package reports

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/storage"
)

func TestSeriesAreDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reports/revenue":
			_, _ = io.WriteString(w, `[{"month":"Feb","revenue":2000},{"month":"Jan","revenue":1000}]`)
		case "/reports/products":
			_, _ = io.WriteString(w, `[{"name":"Whey","quantity":4,"revenue":8000}]`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	s := NewService(api.New(srv.URL, storage.NewMemory()))
	ctx := context.Background()

	rev, err := s.Revenue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rev) != 2 || rev[0].Month != "Feb" || rev[1].Revenue != 1000 {
		t.Fatalf("revenue = %+v", rev)
	}
	ps, err := s.Products(ctx)
	if err != nil || len(ps) != 1 || ps[0].Quantity != 4 {
		t.Fatalf("products = %+v %v", ps, err)
	}

	if got, err := s.Attendance(ctx); err == nil || got != nil {
		t.Fatalf("attendance on 500 = %+v %v", got, err)
	}
}
