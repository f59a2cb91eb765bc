package orders

import (
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

type Item struct {
	SupplementID api.ID          `json:"supplementId"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type Order struct {
	ID            api.ID          `json:"id"`
	MemberID      api.ID          `json:"memberId"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
}

// Request is the body of POST /orders, built from a cart.
type Request struct {
	MemberID api.ID          `json:"memberId"`
	Items    []Item          `json:"items"`
	Total    decimal.Decimal `json:"total"`
}
