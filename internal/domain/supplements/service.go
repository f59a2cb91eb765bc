package supplements

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrInvalidForm = errors.New("supplements: name, category, non-negative price and stock are required")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) List(ctx context.Context) ([]Supplement, error) {
	var out []Supplement
	if err := s.api.Get(ctx, "/supplements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id api.ID) (*Supplement, error) {
	var sp Supplement
	if err := s.api.Get(ctx, api.Pathf("/supplements/%s", id), &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Service) Create(ctx context.Context, f Form) (Supplement, error) {
	var sp Supplement
	if err := validate(f); err != nil {
		return sp, err
	}
	if err := s.api.Post(ctx, "/supplements", f, &sp); err != nil {
		return Supplement{}, err
	}
	return sp, nil
}

func (s *Service) Update(ctx context.Context, id api.ID, f Form) (Supplement, error) {
	var sp Supplement
	if err := validate(f); err != nil {
		return sp, err
	}
	if err := s.api.Put(ctx, api.Pathf("/supplements/%s", id), f, &sp); err != nil {
		return Supplement{}, err
	}
	return sp, nil
}

func (s *Service) Delete(ctx context.Context, id api.ID) error {
	return s.api.Delete(ctx, api.Pathf("/supplements/%s", id), nil)
}

func validate(f Form) error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Category) == "" || f.Price.IsNegative() || f.Stock < 0 {
		return ErrInvalidForm
	}
	return nil
}

// Categories returns the distinct categories, sorted.
func Categories(items []Supplement) []string {
	set := map[string]struct{}{}
	for _, it := range items {
		set[it.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
