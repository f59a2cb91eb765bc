package screen

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/supplements"
)

// Supplements is the owner's inventory screen.
type Supplements struct {
	*CRUD[supplements.Supplement, supplements.Form]
}

func NewSupplements(parent context.Context, ss *supplements.Service, log *slog.Logger) *Supplements {
	return &Supplements{NewCRUD[supplements.Supplement, supplements.Form](
		New(parent, "supplements", log), ss,
		func(s supplements.Supplement) api.ID { return s.ID },
	)}
}

// Filter matches name by substring and category exactly ("" means all).
func (s *Supplements) Filter(query, category string) []supplements.Supplement {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.Rows(func(it supplements.Supplement) bool {
		if category != "" && it.Category != category {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(it.Name), q)
	})
}

func (s *Supplements) Categories() []string { return supplements.Categories(s.Items()) }
