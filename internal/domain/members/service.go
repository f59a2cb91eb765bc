package members

import (
	"context"
	"errors"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrInvalidForm = errors.New("members: name, email and plan are required")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) List(ctx context.Context) ([]Member, error) {
	var out []Member
	if err := s.api.Get(ctx, "/members", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Me is the signed in member's own record.
func (s *Service) Me(ctx context.Context) (*Member, error) {
	var m Member
	if err := s.api.Get(ctx, "/members/me", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Get(ctx context.Context, id api.ID) (*Member, error) {
	var m Member
	if err := s.api.Get(ctx, api.Pathf("/members/%s", id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, f Form) (Member, error) {
	var m Member
	if err := validate(f); err != nil {
		return m, err
	}
	if err := s.api.Post(ctx, "/members", f, &m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id api.ID, f Form) (Member, error) {
	var m Member
	if err := validate(f); err != nil {
		return m, err
	}
	if err := s.api.Put(ctx, api.Pathf("/members/%s", id), f, &m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id api.ID) error {
	return s.api.Delete(ctx, api.Pathf("/members/%s", id), nil)
}

func validate(f Form) error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || f.PlanID == "" {
		return ErrInvalidForm
	}
	return nil
}

// Matches is the members screen search: case-insensitive over name, email
// and phone.
func (m Member) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(m.Phone, q)
}
