// Package cart is the storefront basket. It lives only in memory until it
// is turned into an order request.
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/orders"
	"github.com/gympro/gympro-client/internal/domain/supplements"
)

var (
	ErrOutOfStock = errors.New("cart: not enough stock")
	ErrNotInCart  = errors.New("cart: item not in cart")
)

type Line struct {
	Supplement supplements.Supplement
	Quantity   int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Supplement.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in the order they were first added.
type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

func (c *Cart) find(id api.ID) int {
	for i, l := range c.lines {
		if l.Supplement.ID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of s in the cart, incrementing an existing line.
func (c *Cart) Add(s supplements.Supplement) error {
	i := c.find(s.ID)
	if i < 0 {
		if s.Stock < 1 {
			return fmt.Errorf("%w: %s", ErrOutOfStock, s.Name)
		}
		c.lines = append(c.lines, Line{Supplement: s, Quantity: 1})
		return nil
	}
	if c.lines[i].Quantity+1 > s.Stock {
		return fmt.Errorf("%w: %s (%d available)", ErrOutOfStock, s.Name, s.Stock)
	}
	c.lines[i].Supplement = s
	c.lines[i].Quantity++
	return nil
}

// Decrement removes one unit; the line disappears with its last unit.
func (c *Cart) Decrement(id api.ID) error {
	i := c.find(id)
	if i < 0 {
		return ErrNotInCart
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return nil
}

func (c *Cart) RemoveLine(id api.ID) error {
	i := c.find(id)
	if i < 0 {
		return ErrNotInCart
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) Lines() []Line { return append([]Line(nil), c.lines...) }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of price * quantity.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Order(memberID api.ID) orders.Request {
	items := make([]orders.Item, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, orders.Item{
			SupplementID: l.Supplement.ID,
			Quantity:     l.Quantity,
			Price:        l.Supplement.Price,
		})
	}
	return orders.Request{MemberID: memberID, Items: items, Total: c.Total()}
}
