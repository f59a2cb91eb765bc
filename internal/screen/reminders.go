package screen

import (
	"context"
	"log/slog"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/reminders"
)

// Sender delivers a reminder email batch, see internal/dispatch.
type Sender interface {
	SendEmail(ctx context.Context, ids []api.ID, subject, markdown string) (reminders.EmailResult, error)
}

type Reminders struct {
	*Screen
	svc      *reminders.Service
	sender   Sender
	pending  []reminders.Pending
	selected map[api.ID]bool
}

func NewReminders(parent context.Context, rs *reminders.Service, sender Sender, log *slog.Logger) *Reminders {
	return &Reminders{Screen: New(parent, "reminders", log), svc: rs, sender: sender, selected: map[api.ID]bool{}}
}

func (r *Reminders) Load() error {
	if err := r.Screen.Load(Into(&r.pending, r.svc.Pending)); err != nil {
		return err
	}
	kept := map[api.ID]bool{}
	for _, p := range r.pending {
		if r.selected[p.MemberID] {
			kept[p.MemberID] = true
		}
	}
	r.selected = kept
	return nil
}

func (r *Reminders) Pending(kind reminders.Kind) []reminders.Pending {
	var out []reminders.Pending
	for _, p := range r.pending {
		if kind == "" || p.Type == kind {
			out = append(out, p)
		}
	}
	return out
}

func (r *Reminders) Toggle(id api.ID) { r.selected[id] = !r.selected[id] }

func (r *Reminders) SelectAll() {
	for _, p := range r.pending {
		r.selected[p.MemberID] = true
	}
}

// Selected lists chosen members once each, in pending order. A member can
// be pending for both expiry and dues.
func (r *Reminders) Selected() []api.ID {
	var out []api.ID
	seen := map[api.ID]bool{}
	for _, p := range r.pending {
		if r.selected[p.MemberID] && !seen[p.MemberID] {
			seen[p.MemberID] = true
			out = append(out, p.MemberID)
		}
	}
	return out
}

// Send emails the selected members, clears the selection and reloads.
func (r *Reminders) Send(subject, markdown string) (reminders.EmailResult, error) {
	res, err := r.sender.SendEmail(r.ctx, r.Selected(), subject, markdown)
	if err != nil {
		return res, r.guard(err)
	}
	r.selected = map[api.ID]bool{}
	return res, r.Load()
}
