package supplements

import (
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

// Supplement is a storefront product. Stock is decremented by the backend
// when an order is placed.
type Supplement struct {
	ID          api.ID          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

type Form struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

func (s Supplement) Form() Form {
	return Form{Name: s.Name, Description: s.Description, Price: s.Price, Stock: s.Stock, Category: s.Category}
}

func (s Supplement) InStock() bool { return s.Stock > 0 }
