// Package dispatch sends membership reminders: the email batch through the
// backend, optional texts through an SMS gateway, and a summary to the owner.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/infra/metrics"
	"github.com/gympro/gympro-client/internal/notify"
)

type Backend interface {
	Pending(ctx context.Context) ([]reminders.Pending, error)
	SendEmail(ctx context.Context, r reminders.EmailRequest) (reminders.EmailResult, error)
}

type Summary struct {
	Pending    int
	Emailed    int
	Failed     int
	Texted     int
	TextFailed int
}

func (s Summary) String() string {
	return fmt.Sprintf("Reminders: %d pending, %d emailed, %d failed, %d SMS sent, %d SMS failed",
		s.Pending, s.Emailed, s.Failed, s.Texted, s.TextFailed)
}

type Dispatcher struct {
	backend Backend
	sms     notify.SMS
	owner   notify.Notifier
	brand   string
	md      goldmark.Markdown
	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Dispatcher)

// WithSMS turns on texting members that have a phone number.
func WithSMS(s notify.SMS) Option           { return func(d *Dispatcher) { d.sms = s } }
func WithOwner(n notify.Notifier) Option    { return func(d *Dispatcher) { d.owner = n } }
func WithBrand(b string) Option             { return func(d *Dispatcher) { d.brand = b } }
func WithLogger(l *slog.Logger) Option      { return func(d *Dispatcher) { d.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(d *Dispatcher) { d.metrics = m } }

func New(b Backend, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		backend: b,
		owner:   notify.Nop{},
		brand:   "GymPro",
		md:      goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		log:     logger.Discard(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// SendEmail sends one batch. The markdown body goes out both as the plain
// message and rendered to HTML.
func (d *Dispatcher) SendEmail(ctx context.Context, ids []api.ID, subject, markdown string) (reminders.EmailResult, error) {
	body, err := d.render(markdown)
	if err != nil {
		return reminders.EmailResult{}, err
	}
	res, err := d.backend.SendEmail(ctx, reminders.EmailRequest{
		MemberIDs: ids,
		Subject:   subject,
		Message:   markdown,
		HTML:      body,
	})
	if err != nil {
		d.metrics.ReminderSent("email", err)
		return res, err
	}
	for i := 0; i < res.Sent; i++ {
		d.metrics.ReminderSent("email", nil)
	}
	for i := 0; i < res.Failed; i++ {
		d.metrics.ReminderSent("email", errFailed)
	}
	return res, nil
}

var errFailed = fmt.Errorf("delivery failed")

func (d *Dispatcher) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := d.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render reminder body: %w", err)
	}
	return buf.String(), nil
}

// Run reminds everybody the backend reports as pending. A failed email
// batch aborts the run; failed texts are counted and logged.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	pending, err := d.backend.Pending(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("pending reminders: %w", err)
	}
	s := Summary{Pending: len(pending)}
	if len(pending) == 0 {
		d.log.Info("no pending reminders")
		return s, nil
	}

	ids := make([]api.ID, 0, len(pending))
	for _, p := range pending {
		ids = append(ids, p.MemberID)
	}
	res, err := d.SendEmail(ctx, ids, "Membership reminder", DefaultBody(d.brand))
	if err != nil {
		return s, fmt.Errorf("send reminder emails: %w", err)
	}
	s.Emailed, s.Failed = res.Sent, res.Failed
	for _, e := range res.Errors {
		d.log.Warn("reminder email failed", "err", e)
	}

	if d.sms != nil {
		for _, p := range pending {
			if p.Phone == nil || *p.Phone == "" {
				continue
			}
			err := d.sms.SendSMS(ctx, *p.Phone, Text(d.brand, p))
			d.metrics.ReminderSent("sms", err)
			if err != nil {
				s.TextFailed++
				d.log.Warn("reminder sms failed", "member", p.MemberID, "err", err)
				continue
			}
			s.Texted++
		}
	}

	if err := d.owner.Notify(ctx, s.String()); err != nil {
		d.log.Warn("owner summary failed", "err", err)
	}
	d.log.Info("reminders dispatched", "pending", s.Pending, "emailed", s.Emailed,
		"failed", s.Failed, "texted", s.Texted)
	return s, nil
}
