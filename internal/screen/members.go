package screen

import (
	"context"
	"log/slog"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/plans"
)

type MemberRow struct {
	members.Member
	PlanName string
}

// Members is the owner's member table: members and plans load together.
type Members struct {
	*CRUD[members.Member, members.Form]
	plans []plans.Plan
}

func NewMembers(parent context.Context, ms *members.Service, ps *plans.Service, log *slog.Logger) *Members {
	m := &Members{}
	m.CRUD = NewCRUD[members.Member, members.Form](
		New(parent, "members", log), ms,
		func(x members.Member) api.ID { return x.ID },
		Into(&m.plans, ps.List),
	)
	return m
}

func (m *Members) Plans() []plans.Plan { return append([]plans.Plan(nil), m.plans...) }

// Search filters by free text and, when status is non-empty, by status.
func (m *Members) Search(query string, status members.Status) []MemberRow {
	byID := plans.ByID(m.plans)
	var out []MemberRow
	for _, mem := range m.Rows(func(x members.Member) bool {
		return x.Matches(query) && (status == "" || x.Status == status)
	}) {
		name := "-"
		if p, ok := byID[mem.PlanID]; ok {
			name = p.Name
		}
		out = append(out, MemberRow{Member: mem, PlanName: name})
	}
	return out
}

// Plans is the owner's plan catalog.
type Plans struct {
	*CRUD[plans.Plan, plans.Form]
}

func NewPlans(parent context.Context, ps *plans.Service, log *slog.Logger) *Plans {
	return &Plans{NewCRUD[plans.Plan, plans.Form](
		New(parent, "plans", log), ps,
		func(p plans.Plan) api.ID { return p.ID },
	)}
}
