package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/dispatch"
	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/report"
)

const owner = int64(777)

type fakeAPI struct {
	mu       sync.Mutex
	updates  chan tgbotapi.Update
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return f.updates }

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

type fakeStats struct{ calls int }

func (f *fakeStats) Stats(context.Context) (dashboard.Stats, error) {
	f.calls++
	return dashboard.Stats{TotalMembers: 40, ActiveMembers: 31, MonthlyRevenue: decimal.NewFromInt(125000), TodayAttendance: 12}, nil
}

type fakePending struct{ items []reminders.Pending }

func (f fakePending) Pending(context.Context) ([]reminders.Pending, error) { return f.items, nil }

type fakeReminders struct {
	s   dispatch.Summary
	err error
}

func (f fakeReminders) Run(context.Context) (dispatch.Summary, error) { return f.s, f.err }

type exported struct {
	t report.Type
	f report.Format
}

type fakeReports struct{ got []exported }

func (f *fakeReports) Export(_ context.Context, t report.Type, fm report.Format) (report.Result, error) {
	f.got = append(f.got, exported{t, fm})
	return report.Result{Name: "x." + string(fm)}, nil
}

func newBot(deps Deps) (*Bot, *fakeAPI) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update)}
	return New(api, nil, owner, "Iron Temple", deps), api
}

func command(chatID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func TestStatsCommand(t *testing.T) {
	stats := &fakeStats{}
	b, api := newBot(Deps{Stats: stats})
	b.onMessage(context.Background(), command(owner, "/stats"))

	got := api.texts()
	if len(got) != 1 {
		t.Fatalf("replies = %q", got)
	}
	for _, want := range []string{"40 total", "31 active", "Rs. 125,000", "Checked in today: 12"} {
		if !strings.Contains(got[0], want) {
			t.Errorf("reply missing %q:\n%s", want, got[0])
		}
	}
}

func TestForeignChatIsRefused(t *testing.T) {
	stats := &fakeStats{}
	b, api := newBot(Deps{Stats: stats})
	b.onMessage(context.Background(), command(42, "/stats"))

	if stats.calls != 0 {
		t.Fatal("stats loaded for a foreign chat")
	}
	if got := api.texts(); len(got) != 1 || !strings.Contains(got[0], "only answers the gym owner") {
		t.Fatalf("replies = %q", got)
	}
}

func TestReportCommandWithArguments(t *testing.T) {
	rep := &fakeReports{}
	b, _ := newBot(Deps{Reports: rep})
	b.onMessage(context.Background(), command(owner, "/report revenue xlsx"))
	b.onMessage(context.Background(), command(owner, "/report attendance"))

	want := []exported{{report.Revenue, report.XLSX}, {report.Attendance, report.PDF}}
	if len(rep.got) != 2 || rep.got[0] != want[0] || rep.got[1] != want[1] {
		t.Fatalf("exports = %+v", rep.got)
	}
}

func TestReportCommandUnknownType(t *testing.T) {
	rep := &fakeReports{}
	b, api := newBot(Deps{Reports: rep})
	b.onMessage(context.Background(), command(owner, "/report weather"))

	if len(rep.got) != 0 {
		t.Fatal("exported an unknown report")
	}
	if got := api.texts(); len(got) != 1 || !strings.Contains(got[0], "complete") {
		t.Fatalf("replies = %q", got)
	}
}

func TestReportsButtonShowsPicker(t *testing.T) {
	b, api := newBot(Deps{})
	b.onMessage(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: owner},
		Text: btnReports,
	}})

	m, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T", api.sent[0])
	}
	kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) != len(report.Types) {
		t.Fatalf("markup = %#v", m.ReplyMarkup)
	}
	if d := kb.InlineKeyboard[0][1].CallbackData; d == nil || *d != "report:revenue:xlsx" {
		t.Fatalf("callback data = %v", d)
	}
}

func TestReportCallbackExports(t *testing.T) {
	rep := &fakeReports{}
	b, api := newBot(Deps{Reports: rep})
	b.onCallback(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    "report:complete:pdf",
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: owner}},
	}})

	if len(rep.got) != 1 || rep.got[0] != (exported{report.Complete, report.PDF}) {
		t.Fatalf("exports = %+v", rep.got)
	}
	if len(api.requests) != 1 {
		t.Fatalf("callback answers = %d", len(api.requests))
	}
}

func TestRemindNothingPending(t *testing.T) {
	b, api := newBot(Deps{Reminders: fakeReminders{}})
	b.onMessage(context.Background(), command(owner, "/remind"))
	if got := api.texts(); len(got) != 1 || !strings.Contains(got[0], "Nothing to remind") {
		t.Fatalf("replies = %q", got)
	}

	// with pending members the dispatcher posts the summary itself
	b, api = newBot(Deps{Reminders: fakeReminders{s: dispatch.Summary{Pending: 3, Emailed: 3}}})
	b.onMessage(context.Background(), command(owner, "/remind"))
	if got := api.texts(); len(got) != 0 {
		t.Fatalf("replies = %q", got)
	}

	b, api = newBot(Deps{Reminders: fakeReminders{err: errors.New("backend down")}})
	b.onMessage(context.Background(), command(owner, "/remind"))
	if got := api.texts(); len(got) != 1 || !strings.Contains(got[0], "backend down") {
		t.Fatalf("replies = %q", got)
	}
}

func TestFormatPending(t *testing.T) {
	date, days := "2026-10-20", 6
	out := formatPending([]reminders.Pending{
		{MemberName: "Asha", Type: reminders.KindExpiry, ExpiryDate: &date, DaysLeft: &days},
		{MemberName: "Ravi", Type: reminders.KindDue, DueAmount: decimal.NewFromInt(1500)},
	})
	want := "2 pending reminders:\n- Asha: expiring on 2026-10-20 (6 days left)\n- Ravi: dues Rs. 1,500"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
	if formatPending(nil) != "No pending reminders." {
		t.Fatal("empty list")
	}

	many := make([]reminders.Pending, maxPendingLines+5)
	for i := range many {
		many[i] = reminders.Pending{MemberName: "M", Type: reminders.KindDue}
	}
	if out := formatPending(many); !strings.HasSuffix(out, "... and 5 more") {
		t.Fatalf("truncation: %q", out[len(out)-30:])
	}
}

func TestRunStops(t *testing.T) {
	b, api := newBot(Deps{})
	close(api.updates)
	if err := b.Run(context.Background(), 1); err != nil {
		t.Fatalf("closed channel: %v", err)
	}

	b, _ = newBot(Deps{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Run(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled: %v", err)
	}
}

func TestPendingCommand(t *testing.T) {
	b, api := newBot(Deps{Pending: fakePending{items: []reminders.Pending{
		{MemberName: "Ravi", Type: reminders.KindDue, DueAmount: decimal.NewFromInt(800)},
	}}})
	b.onMessage(context.Background(), command(owner, "/pending"))
	if got := api.texts(); len(got) != 1 || !strings.Contains(got[0], "Ravi: dues Rs. 800") {
		t.Fatalf("replies = %q", got)
	}
}
