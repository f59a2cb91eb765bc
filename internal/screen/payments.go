package screen

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/payments"
)

// Payments is the owner's ledger view with the form to record a desk payment.
type Payments struct {
	*Screen
	svc      *payments.Service
	msvc     *members.Service
	payments []payments.Payment
	members  []members.Member
}

func NewPayments(parent context.Context, ps *payments.Service, ms *members.Service, log *slog.Logger) *Payments {
	return &Payments{Screen: New(parent, "payments", log), svc: ps, msvc: ms}
}

func (p *Payments) Load() error {
	return p.Screen.Load(Into(&p.payments, p.svc.List), Into(&p.members, p.msvc.List))
}

func (p *Payments) Rows(status payments.Status) []payments.Payment {
	var out []payments.Payment
	for _, pm := range p.payments {
		if status == "" || pm.Status == status {
			out = append(out, pm)
		}
	}
	return out
}

func (p *Payments) Members() []members.Member { return append([]members.Member(nil), p.members...) }

func (p *Payments) Totals() map[payments.Status]decimal.Decimal { return payments.Totals(p.payments) }

// Record stores a payment and re-fetches, member dues included.
func (p *Payments) Record(f payments.Form) error {
	if _, err := p.svc.Create(p.ctx, f); err != nil {
		return p.guard(err)
	}
	return p.Load()
}
