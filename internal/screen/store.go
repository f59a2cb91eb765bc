package screen

import (
	"context"
	"log/slog"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/cart"
	"github.com/gympro/gympro-client/internal/domain/orders"
	"github.com/gympro/gympro-client/internal/domain/supplements"
)

// Store is the member storefront: catalog plus an in-memory cart.
type Store struct {
	*Screen
	svc     *supplements.Service
	orders  *orders.Service
	catalog []supplements.Supplement
	Cart    *cart.Cart
}

func NewStore(parent context.Context, ss *supplements.Service, osvc *orders.Service, log *slog.Logger) *Store {
	return &Store{Screen: New(parent, "store", log), svc: ss, orders: osvc, Cart: cart.New()}
}

func (s *Store) Load() error { return s.Screen.Load(Into(&s.catalog, s.svc.List)) }

func (s *Store) Catalog() []supplements.Supplement {
	return append([]supplements.Supplement(nil), s.catalog...)
}

func (s *Store) Add(id api.ID) error {
	for _, it := range s.catalog {
		if it.ID == id {
			return s.Cart.Add(it)
		}
	}
	return cart.ErrNotInCart
}

// PlaceOrder submits the cart, empties it and reloads stock levels.
func (s *Store) PlaceOrder(memberID api.ID) (orders.Order, error) {
	o, err := s.orders.Create(s.ctx, s.Cart.Order(memberID))
	if err != nil {
		return o, s.guard(err)
	}
	s.Cart.Clear()
	return o, s.Load()
}
