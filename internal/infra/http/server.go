package http

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checker reports whether a dependency the daemon needs is usable.
type Checker func(ctx context.Context) error

type Server struct {
	srv *http.Server
}

// New serves /health (200 when every check passes, 503 otherwise) and, when
// gatherer is non-nil, /metrics.
func New(addr string, gatherer prometheus.Gatherer, checks map[string]Checker) *Server {
	return &Server{srv: &http.Server{Addr: addr, Handler: Handler(gatherer, checks)}}
}

func Handler(gatherer prometheus.Gatherer, checks map[string]Checker) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(name + ": " + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
