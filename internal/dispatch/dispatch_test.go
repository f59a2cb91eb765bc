package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/infra/metrics"
)

type fakeBackend struct {
	pending []reminders.Pending
	sent    []reminders.EmailRequest
	result  reminders.EmailResult
	err     error
}

func (f *fakeBackend) Pending(context.Context) ([]reminders.Pending, error) { return f.pending, nil }

func (f *fakeBackend) SendEmail(_ context.Context, r reminders.EmailRequest) (reminders.EmailResult, error) {
	f.sent = append(f.sent, r)
	return f.result, f.err
}

type fakeSMS struct {
	to   []string
	body []string
	fail map[string]bool
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	if f.fail[to] {
		return errors.New("undeliverable")
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}

type fakeOwner struct{ msgs []string }

func (f *fakeOwner) Notify(_ context.Context, text string) error {
	f.msgs = append(f.msgs, text)
	return nil
}

func (f *fakeOwner) SendDocument(context.Context, string, []byte, string) error { return nil }

func ptr[T any](v T) *T { return &v }

func TestRunEmailsTextsAndSummarises(t *testing.T) {
	b := &fakeBackend{
		pending: []reminders.Pending{
			{MemberID: "1", MemberName: "Asha", Phone: ptr("+911"), Type: reminders.KindExpiry, ExpiryDate: ptr("2026-03-10"), DaysLeft: ptr(5)},
			{MemberID: "2", MemberName: "Ravi", Type: reminders.KindDue, DueAmount: decimal.NewFromInt(1500)},
			{MemberID: "3", MemberName: "Meera", Phone: ptr("+913"), Type: reminders.KindDue, DueAmount: decimal.NewFromInt(200)},
		},
		result: reminders.EmailResult{Sent: 2, Failed: 1, Errors: []string{"bounce"}},
	}
	sms := &fakeSMS{fail: map[string]bool{"+913": true}}
	owner := &fakeOwner{}
	m := metrics.New()

	d := New(b, WithSMS(sms), WithOwner(owner), WithBrand("Iron Temple"), WithMetrics(m), WithLogger(logger.Discard()))
	s, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := Summary{Pending: 3, Emailed: 2, Failed: 1, Texted: 1, TextFailed: 1}
	if s != want {
		t.Fatalf("summary = %+v", s)
	}
	if len(b.sent) != 1 {
		t.Fatalf("email batches = %d", len(b.sent))
	}
	req := b.sent[0]
	if len(req.MemberIDs) != 3 || req.MemberIDs[2] != api.ID("3") {
		t.Fatalf("ids = %v", req.MemberIDs)
	}
	if !strings.Contains(req.HTML, "<strong>Iron Temple</strong>") {
		t.Fatalf("html = %s", req.HTML)
	}
	if len(sms.to) != 1 || sms.to[0] != "+911" || !strings.Contains(sms.body[0], "5 days left") {
		t.Fatalf("sms = %v %v", sms.to, sms.body)
	}
	if len(owner.msgs) != 1 || owner.msgs[0] != want.String() {
		t.Fatalf("owner = %v", owner.msgs)
	}
	const counts = `
# HELP gympro_reminders_sent_total Reminder deliveries by channel and result.
# TYPE gympro_reminders_sent_total counter
gympro_reminders_sent_total{channel="email",result="error"} 1
gympro_reminders_sent_total{channel="email",result="ok"} 2
gympro_reminders_sent_total{channel="sms",result="error"} 1
gympro_reminders_sent_total{channel="sms",result="ok"} 1
`
	if err := testutil.GatherAndCompare(m.Registry, strings.NewReader(counts), "gympro_reminders_sent_total"); err != nil {
		t.Fatal(err)
	}
}

func TestRunNothingPending(t *testing.T) {
	b := &fakeBackend{}
	owner := &fakeOwner{}
	s, err := New(b, WithOwner(owner)).Run(context.Background())
	if err != nil || s.Pending != 0 {
		t.Fatalf("s = %+v err = %v", s, err)
	}
	if len(b.sent) != 0 || len(owner.msgs) != 0 {
		t.Fatal("nothing should be sent")
	}
}

func TestRunEmailFailureAborts(t *testing.T) {
	b := &fakeBackend{
		pending: []reminders.Pending{{MemberID: "1", Phone: ptr("+911")}},
		err:     errors.New("backend down"),
	}
	sms := &fakeSMS{}
	if _, err := New(b, WithSMS(sms)).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(sms.to) != 0 {
		t.Fatal("no texts after a failed batch")
	}
}

func TestText(t *testing.T) {
	due := Text("GymPro", reminders.Pending{MemberName: "Ravi", Type: reminders.KindDue, DueAmount: decimal.RequireFromString("1499.60")})
	if due != "GymPro: Hi Ravi, you have Rs. 1500 due. Please clear it at the front desk." {
		t.Fatalf("due = %s", due)
	}
	exp := Text("GymPro", reminders.Pending{MemberName: "Asha", Type: reminders.KindExpiry})
	if !strings.Contains(exp, "expires soon") {
		t.Fatalf("expiry = %s", exp)
	}
}

func TestSchedulerRejectsBadInput(t *testing.T) {
	d := New(&fakeBackend{})
	if _, err := NewScheduler(d, "0 9 * * *", "Mars/Olympus", logger.Discard()); err == nil {
		t.Fatal("expected timezone error")
	}
	if _, err := NewScheduler(d, "every day", "Asia/Kolkata", logger.Discard()); err == nil {
		t.Fatal("expected schedule error")
	}
	s, err := NewScheduler(d, "0 9 * * *", "Asia/Kolkata", logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	next := s.Next()
	loc, _ := time.LoadLocation("Asia/Kolkata")
	if h := next.In(loc).Hour(); h != 9 {
		t.Fatalf("next run at hour %d", h)
	}
}

func TestSchedulerNextUsesConfiguredZone(t *testing.T) {
	prev := time.Local
	time.Local = time.UTC
	defer func() { time.Local = prev }()

	s, err := NewScheduler(New(&fakeBackend{}), "30 9 * * *", "Asia/Kolkata", logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	loc, _ := time.LoadLocation("Asia/Kolkata")
	next := s.Next().In(loc)
	if next.Hour() != 9 || next.Minute() != 30 {
		t.Fatalf("next = %s", next)
	}
	if !next.After(time.Now()) || next.Sub(time.Now()) > 24*time.Hour {
		t.Fatalf("next = %s not within a day", next)
	}
}
