// Package checkout runs a hosted-gateway payment: the backend creates an
// order, a local page opens the gateway modal, and the signed result is
// verified by the backend before it counts.
package checkout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const fetchTimeout = 30 * time.Second

// Loader fetches the gateway script at most once per process. Concurrent
// callers share one in-flight fetch; a failed fetch may be retried.
type Loader struct {
	url   string
	http  *http.Client
	group singleflight.Group

	mu     sync.Mutex
	loaded bool
	script []byte
}

func NewLoader(url string, h *http.Client) *Loader {
	if h == nil {
		h = http.DefaultClient
	}
	return &Loader{url: url, http: h}
}

func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

func (l *Loader) Script() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.script
}

func (l *Loader) Ensure(ctx context.Context) error {
	if l.Loaded() {
		return nil
	}
	// the shared fetch outlives any one caller; each caller stops waiting
	// on its own ctx
	ch := l.group.DoChan("script", func() (interface{}, error) {
		if l.Loaded() {
			return nil, nil
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		body, err := l.fetch(fctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.loaded, l.script = true, body
		l.mu.Unlock()
		return nil, nil
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		return r.Err
	}
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load checkout script: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load checkout script: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load checkout script: %w", err)
	}
	return body, nil
}
