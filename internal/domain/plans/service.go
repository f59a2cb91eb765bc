package plans

import (
	"context"
	"errors"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrInvalidForm = errors.New("plans: name, positive duration and non-negative price are required")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) List(ctx context.Context) ([]Plan, error) {
	var out []Plan
	if err := s.api.Get(ctx, "/plans", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id api.ID) (*Plan, error) {
	var p Plan
	if err := s.api.Get(ctx, api.Pathf("/plans/%s", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, f Form) (Plan, error) {
	var p Plan
	if err := validate(&f); err != nil {
		return p, err
	}
	if err := s.api.Post(ctx, "/plans", f, &p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id api.ID, f Form) (Plan, error) {
	var p Plan
	if err := validate(&f); err != nil {
		return p, err
	}
	if err := s.api.Put(ctx, api.Pathf("/plans/%s", id), f, &p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id api.ID) error {
	return s.api.Delete(ctx, api.Pathf("/plans/%s", id), nil)
}

// validate also drops blank feature lines, keeping the order of the rest.
func validate(f *Form) error {
	if strings.TrimSpace(f.Name) == "" || f.Duration <= 0 || f.Price.IsNegative() {
		return ErrInvalidForm
	}
	features := make([]string, 0, len(f.Features))
	for _, ft := range f.Features {
		if ft = strings.TrimSpace(ft); ft != "" {
			features = append(features, ft)
		}
	}
	f.Features = features
	return nil
}

// ByID indexes plans for name lookups in member tables.
func ByID(ps []Plan) map[api.ID]Plan {
	out := make(map[api.ID]Plan, len(ps))
	for _, p := range ps {
		out[p.ID] = p
	}
	return out
}
