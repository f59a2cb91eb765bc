package screen

import (
	"context"

	"github.com/gympro/gympro-client/internal/api"
)

// Resource is what a list screen edits.
type Resource[T, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, f F) (T, error)
	Update(ctx context.Context, id api.ID, f F) (T, error)
	Delete(ctx context.Context, id api.ID) error
}

// CRUD is the shared list/edit/delete screen shape: deletes patch the local
// list, creates and updates re-fetch everything.
type CRUD[T, F any] struct {
	*Screen
	res   Resource[T, F]
	id    func(T) api.ID
	items []T
	extra []Task
}

func NewCRUD[T, F any](s *Screen, res Resource[T, F], id func(T) api.ID, extra ...Task) *CRUD[T, F] {
	return &CRUD[T, F]{Screen: s, res: res, id: id, extra: extra}
}

func (c *CRUD[T, F]) Load() error {
	tasks := append([]Task{Into(&c.items, c.res.List)}, c.extra...)
	return c.Screen.Load(tasks...)
}

func (c *CRUD[T, F]) Items() []T { return append([]T(nil), c.items...) }

// Rows returns the items keep accepts, in list order.
func (c *CRUD[T, F]) Rows(keep func(T) bool) []T {
	var out []T
	for _, it := range c.items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *CRUD[T, F]) Find(id api.ID) (T, bool) {
	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Delete asks confirm, issues one DELETE and drops exactly that row.
func (c *CRUD[T, F]) Delete(id api.ID, confirm Confirm, prompt string) error {
	if confirm != nil && !confirm(prompt) {
		return ErrDeclined
	}
	if err := c.res.Delete(c.ctx, id); err != nil {
		return c.guard(err)
	}
	if c.Closed() {
		return ErrClosed
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if c.id(it) != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.log.Info("deleted", "id", id)
	return nil
}

// Save creates when id is empty and updates otherwise, then reloads.
func (c *CRUD[T, F]) Save(id api.ID, f F) error {
	var err error
	if id == "" {
		_, err = c.res.Create(c.ctx, f)
	} else {
		_, err = c.res.Update(c.ctx, id, f)
	}
	if err != nil {
		return c.guard(err)
	}
	return c.Load()
}
