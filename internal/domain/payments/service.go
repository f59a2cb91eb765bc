package payments

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrInvalidAmount = errors.New("payments: amount must be greater than zero")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) List(ctx context.Context) ([]Payment, error) {
	var out []Payment
	if err := s.api.Get(ctx, "/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Mine lists the signed in member's payments.
func (s *Service) Mine(ctx context.Context) ([]Payment, error) {
	var out []Payment
	if err := s.api.Get(ctx, "/payments/me", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, f Form) (Payment, error) {
	var p Payment
	if f.MemberID == "" || !f.Amount.GreaterThan(decimal.Zero) {
		return p, ErrInvalidAmount
	}
	if f.Method == "" {
		f.Method = "cash"
	}
	if err := s.api.Post(ctx, "/payments", f, &p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// Totals sums amounts per status.
func Totals(ps []Payment) map[Status]decimal.Decimal {
	out := map[Status]decimal.Decimal{}
	for _, p := range ps {
		out[p.Status] = out[p.Status].Add(p.Amount)
	}
	return out
}
