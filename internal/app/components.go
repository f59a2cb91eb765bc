package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/gympro/gympro-client/internal/bot"
	"github.com/gympro/gympro-client/internal/checkout"
	"github.com/gympro/gympro-client/internal/dispatch"
	httpx "github.com/gympro/gympro-client/internal/infra/http"
	"github.com/gympro/gympro-client/internal/notify"
	"github.com/gympro/gympro-client/internal/report"
)

// Exporter writes reports to sink: "dir" (default), "s3" or "telegram".
func (a *App) Exporter(ctx context.Context, sink string) (*report.Exporter, error) {
	var s report.Sink
	switch sink {
	case "", "dir":
		s = report.DirSink{Dir: a.Config.Reports.Dir}
	case "s3":
		c := a.Config.Reports.S3
		s3, err := report.NewS3Sink(ctx, report.S3Options{
			Bucket:    c.Bucket,
			Region:    c.Region,
			Prefix:    c.Prefix,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		s = s3
	case "telegram":
		s = report.TelegramSink{N: a.Owner}
	default:
		return nil, fmt.Errorf("unknown report sink %q", sink)
	}
	agg := report.NewAggregator(a.Reports, a.Dashboard)
	return report.NewExporter(agg, s,
		report.WithBrand(a.Brand()),
		report.WithFontDir(a.Config.Reports.FontDir),
		report.WithLogger(a.Log.With("component", "report")),
		report.WithMetrics(a.Metrics),
	), nil
}

func (a *App) Dispatcher() *dispatch.Dispatcher {
	opts := []dispatch.Option{
		dispatch.WithOwner(a.Owner),
		dispatch.WithBrand(a.Brand()),
		dispatch.WithLogger(a.Log.With("component", "reminders")),
		dispatch.WithMetrics(a.Metrics),
	}
	if t := a.Config.Twilio; a.Config.Reminders.SMS && t.AccountSID != "" {
		opts = append(opts, dispatch.WithSMS(notify.NewTwilio(t.AccountSID, t.AuthToken, t.From, a.Log.With("component", "sms"))))
	}
	return dispatch.New(a.Reminders, opts...)
}

// Bot is the owner console in the admin chat, nil without a telegram token.
// Reports asked for there are delivered into the same chat.
func (a *App) Bot(ctx context.Context) (*bot.Bot, error) {
	if a.telegram == nil {
		return nil, nil
	}
	exp, err := a.Exporter(ctx, "telegram")
	if err != nil {
		return nil, err
	}
	return bot.New(a.telegram, a.Log.With("component", "bot"), a.Config.Telegram.AdminChatID, a.Brand(), bot.Deps{
		Stats:     a.Dashboard,
		Pending:   a.Reminders,
		Reminders: a.Dispatcher(),
		Reports:   exp,
	}), nil
}

// Daemon runs the reminder schedule with the health and metrics endpoints,
// plus the owner bot when telegram is configured, until ctx is canceled.
func (a *App) Daemon(ctx context.Context) error {
	sched, err := dispatch.NewScheduler(a.Dispatcher(), a.Config.Reminders.Schedule, a.Config.App.Timezone, a.Log)
	if err != nil {
		return err
	}

	srv := httpx.New(a.Config.HTTP.Addr, a.metricsGatherer(), map[string]httpx.Checker{"storage": a.Ping})
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Error("http server error", "err", err)
		}
	}()
	a.Log.Info("HTTP server started", "addr", a.Config.HTTP.Addr)

	b, err := a.Bot(ctx)
	if err != nil {
		return err
	}
	if b != nil {
		go func() {
			if err := b.Run(ctx, a.Config.Telegram.PollTimeout); err != nil && !errors.Is(err, context.Canceled) {
				a.Log.Error("bot stopped", "err", err)
			}
		}()
		a.Log.Info("owner bot started")
	}

	sched.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	a.Log.Info("graceful shutdown complete")
	return nil
}

// Checkout starts the local payment page server. The returned stop func
// shuts it down.
func (a *App) Checkout(opener checkout.Opener) (*checkout.Flow, func(), error) {
	loader := checkout.NewLoader(a.Config.Checkout.ScriptURL, nil)
	srv := checkout.NewServer(a.Config.Checkout.Addr, a.Brand(), loader, a.Log.With("component", "checkout"))
	if err := srv.Start(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", checkout.ErrCouldNotStart, err)
	}
	if opener == nil {
		opener = checkout.OpenerFunc(Browser)
	}
	flow := checkout.NewFlow(a.API, loader, srv, opener,
		checkout.WithSupport(a.Owner),
		checkout.WithLogger(a.Log.With("component", "checkout")),
		checkout.WithMetrics(a.Metrics),
	)
	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return flow, stop, nil
}

// Browser opens url with the desktop's default handler.
func Browser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
