// Package screen holds per-screen state for the client. Every screen owns
// a context that is canceled when the screen is closed, so requests still
// in flight after navigation never write into a dead screen.
package screen

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gympro/gympro-client/internal/infra/logger"
)

var (
	// ErrClosed is returned by any operation that finished after Close.
	ErrClosed = errors.New("screen: closed")
	// ErrDeclined means the user answered no to a confirmation.
	ErrDeclined = errors.New("screen: not confirmed")
)

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool

type Screen struct {
	name   string
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

func New(parent context.Context, name string, log *slog.Logger) *Screen {
	if log == nil {
		log = logger.Discard()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Screen{name: name, ctx: ctx, cancel: cancel, log: log.With("screen", name)}
}

func (s *Screen) Context() context.Context { return s.ctx }

// Close cancels everything the screen still has in flight.
func (s *Screen) Close() { s.cancel() }

func (s *Screen) Closed() bool { return s.ctx.Err() != nil }

// Task is one fetch of a batch. Its result is only committed once every
// task of the batch succeeded.
type Task struct {
	run    func(ctx context.Context) error
	commit func()
}

// Into fetches with fn and stores the value in dst on commit.
func Into[T any](dst *T, fn func(ctx context.Context) (T, error)) Task {
	var tmp T
	return Task{
		run: func(ctx context.Context) error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			tmp = v
			return nil
		},
		commit: func() { *dst = tmp },
	}
}

// Load runs tasks in parallel. The first failure cancels the others and
// nothing is committed; partial data is never shown.
func (s *Screen) Load(tasks ...Task) error {
	g, ctx := errgroup.WithContext(s.ctx)
	for _, t := range tasks {
		g.Go(func() error { return t.run(ctx) })
	}
	err := g.Wait()
	if s.Closed() {
		return ErrClosed
	}
	if err != nil {
		s.log.Warn("load failed", "err", err)
		return err
	}
	for _, t := range tasks {
		t.commit()
	}
	return nil
}

// guard maps an error of a finished action to ErrClosed when the screen
// went away meanwhile.
func (s *Screen) guard(err error) error {
	if s.Closed() {
		return ErrClosed
	}
	return err
}
