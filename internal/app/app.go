// Package app wires configuration into a ready client: storage, API
// client, session, navigation and every service the commands use.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/auth"
	"github.com/gympro/gympro-client/internal/config"
	"github.com/gympro/gympro-client/internal/domain/attendance"
	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/orders"
	"github.com/gympro/gympro-client/internal/domain/payments"
	"github.com/gympro/gympro-client/internal/domain/plans"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/domain/reports"
	"github.com/gympro/gympro-client/internal/domain/settings"
	"github.com/gympro/gympro-client/internal/domain/supplements"
	"github.com/gympro/gympro-client/internal/infra/db"
	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/infra/metrics"
	"github.com/gympro/gympro-client/internal/notify"
	"github.com/gympro/gympro-client/internal/router"
	"github.com/gympro/gympro-client/internal/storage"
)

var ErrNotAllowed = errors.New("app: not allowed here")

type Services struct {
	Members     *members.Service
	Plans       *plans.Service
	Payments    *payments.Service
	Attendance  *attendance.Service
	Supplements *supplements.Service
	Orders      *orders.Service
	Reminders   *reminders.Service
	Dashboard   *dashboard.Service
	Settings    *settings.Service
	Reports     *reports.Service
}

type App struct {
	Config  config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics
	Store   storage.Storage
	API     *api.Client
	Session *auth.Session
	Nav     *router.Recorder
	Owner   notify.Notifier
	Services

	pool     *pgxpool.Pool
	telegram *tgbotapi.BotAPI
}

type Option func(*options)

type options struct {
	log   *slog.Logger
	store storage.Storage
}

// WithStorage skips the configured session driver.
func WithStorage(s storage.Storage) Option { return func(o *options) { o.store = s } }
func WithLogger(l *slog.Logger) Option     { return func(o *options) { o.log = l } }

func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	a := &App{Config: cfg, Log: o.log, Nav: router.NewRecorder(router.Login)}
	if a.Log == nil {
		a.Log = logger.New(cfg.App.Env)
	}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	a.Store = o.store
	if a.Store == nil {
		s, err := a.openStorage(ctx)
		if err != nil {
			return nil, err
		}
		a.Store = s
	}

	a.API = api.New(cfg.API.BaseURL, a.Store,
		api.WithLogger(a.Log.With("component", "api")),
		api.WithMetrics(a.Metrics),
		api.OnUnauthorized(a.unauthorized),
	)
	a.Session = auth.NewSession(a.API, a.Store, a.Log.With("component", "auth"))
	a.Services = Services{
		Members:     members.NewService(a.API),
		Plans:       plans.NewService(a.API),
		Payments:    payments.NewService(a.API),
		Attendance:  attendance.NewService(a.API),
		Supplements: supplements.NewService(a.API),
		Orders:      orders.NewService(a.API),
		Reminders:   reminders.NewService(a.API),
		Dashboard:   dashboard.NewService(a.API),
		Settings:    settings.NewService(a.API),
		Reports:     reports.NewService(a.API),
	}

	a.Owner = notify.Nop{}
	if cfg.Telegram.Token != "" {
		tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			a.Log.Warn("telegram disabled", "err", err)
		} else {
			a.Log.Info("telegram authorized", "account", tg.Self.UserName)
			a.telegram = tg
			a.Owner = notify.NewTelegram(tg, cfg.Telegram.AdminChatID, a.Log.With("component", "telegram"))
		}
	}

	if err := a.Session.Restore(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if u := a.Session.Current(); u != nil {
		a.Nav.Navigate(router.Landing(u.Role))
	}
	return a, nil
}

func (a *App) openStorage(ctx context.Context) (storage.Storage, error) {
	switch a.Config.Session.Driver {
	case "memory":
		return storage.NewMemory(), nil
	case "postgres":
		if err := db.Migrate(a.Config.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		pool, err := db.Connect(ctx, a.Config.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.Log.Info("session storage in postgres", "namespace", a.Config.Session.Namespace)
		return storage.NewPG(pool, a.Config.Session.Namespace), nil
	case "file", "":
		return storage.NewFile(a.Config.Session.Path), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", a.Config.Session.Driver)
	}
}

// unauthorized runs after the API client wiped the stored credentials.
func (a *App) unauthorized() {
	a.Session.Invalidate()
	a.Nav.Navigate(router.Login)
}

// Enter moves to route through the role gate. When the gate redirects, the
// redirect is taken and ErrNotAllowed returned.
func (a *App) Enter(route string) error {
	if got := router.Guard(a.Nav, a.Session.Current(), route); got != route {
		return fmt.Errorf("%w: redirected to %s", ErrNotAllowed, got)
	}
	return nil
}

// Ping backs the daemon health check.
func (a *App) Ping(ctx context.Context) error {
	if a.pool != nil {
		return a.pool.Ping(ctx)
	}
	_, _, err := a.Store.Get(ctx, storage.KeyToken)
	return err
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *App) Brand() string {
	if a.Config.App.Brand == "" {
		return "GymPro"
	}
	return a.Config.App.Brand
}

func (a *App) metricsGatherer() prometheus.Gatherer {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics.Registry
}
