package orders

import (
	"context"
	"errors"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrEmptyOrder = errors.New("orders: no items")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, r Request) (Order, error) {
	var o Order
	if len(r.Items) == 0 {
		return o, ErrEmptyOrder
	}
	if err := s.api.Post(ctx, "/orders", r, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}
