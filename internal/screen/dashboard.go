package screen

import (
	"context"
	"log/slog"

	"github.com/gympro/gympro-client/internal/domain/attendance"
	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/payments"
)

type OwnerDashboard struct {
	*Screen
	svc   *dashboard.Service
	Stats dashboard.Stats
}

func NewOwnerDashboard(parent context.Context, d *dashboard.Service, log *slog.Logger) *OwnerDashboard {
	return &OwnerDashboard{Screen: New(parent, "owner-dashboard", log), svc: d}
}

func (d *OwnerDashboard) Load() error { return d.Screen.Load(Into(&d.Stats, d.svc.Stats)) }

// MemberDashboard shows the member's own record, payments and visits.
type MemberDashboard struct {
	*Screen
	ms *members.Service
	ps *payments.Service
	as *attendance.Service

	Me       members.Member
	Payments []payments.Payment
	Visits   []attendance.Record
}

func NewMemberDashboard(parent context.Context, ms *members.Service, ps *payments.Service, as *attendance.Service, log *slog.Logger) *MemberDashboard {
	return &MemberDashboard{Screen: New(parent, "member-dashboard", log), ms: ms, ps: ps, as: as}
}

func (d *MemberDashboard) Load() error {
	return d.Screen.Load(
		Into(&d.Me, func(ctx context.Context) (members.Member, error) {
			m, err := d.ms.Me(ctx)
			if err != nil {
				return members.Member{}, err
			}
			return *m, nil
		}),
		Into(&d.Payments, d.ps.Mine),
		Into(&d.Visits, d.as.Mine),
	)
}
