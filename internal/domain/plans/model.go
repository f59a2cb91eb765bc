package plans

import (
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

// Plan is a membership tier. Deleting one does not touch members that
// still reference it.
type Plan struct {
	ID       api.ID          `json:"id"`
	Name     string          `json:"name"`
	Duration int             `json:"duration"` // months
	Price    decimal.Decimal `json:"price"`
	Features []string        `json:"features"`
}

type Form struct {
	Name     string          `json:"name"`
	Duration int             `json:"duration"`
	Price    decimal.Decimal `json:"price"`
	Features []string        `json:"features"`
}

func (p Plan) Form() Form {
	return Form{Name: p.Name, Duration: p.Duration, Price: p.Price, Features: append([]string(nil), p.Features...)}
}
