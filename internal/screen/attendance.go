package screen

import (
	"context"
	"log/slog"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/attendance"
	"github.com/gympro/gympro-client/internal/domain/members"
)

// Attendance is the front desk check in/out screen for one day.
type Attendance struct {
	*Screen
	svc     *attendance.Service
	msvc    *members.Service
	day     string
	records []attendance.Record
	members []members.Member
}

func NewAttendance(parent context.Context, as *attendance.Service, ms *members.Service, day string, log *slog.Logger) *Attendance {
	return &Attendance{Screen: New(parent, "attendance", log), svc: as, msvc: ms, day: day}
}

func (a *Attendance) Load() error {
	return a.Screen.Load(
		Into(&a.records, func(ctx context.Context) ([]attendance.Record, error) { return a.svc.List(ctx, a.day) }),
		Into(&a.members, a.msvc.List),
	)
}

func (a *Attendance) Records() []attendance.Record {
	return append([]attendance.Record(nil), a.records...)
}

// Open lists visits without a checkout.
func (a *Attendance) Open() []attendance.Record {
	var out []attendance.Record
	for _, r := range a.records {
		if r.Open() {
			out = append(out, r)
		}
	}
	return out
}

func (a *Attendance) Presence() attendance.Presence {
	var active []api.ID
	for _, m := range a.members {
		if m.Status == members.StatusActive {
			active = append(active, m.ID)
		}
	}
	return attendance.ComputePresence(active, a.records, a.day)
}

func (a *Attendance) CheckIn(memberID api.ID) error {
	if _, err := a.svc.CheckIn(a.ctx, memberID); err != nil {
		return a.guard(err)
	}
	return a.Load()
}

func (a *Attendance) CheckOut(recordID api.ID) error {
	rec := attendance.Record{ID: recordID}
	for _, r := range a.records {
		if r.ID == recordID {
			rec = r
		}
	}
	if _, err := a.svc.CheckOut(a.ctx, rec); err != nil {
		return a.guard(err)
	}
	return a.Load()
}
