package screen

import (
	"context"
	"log/slog"

	"github.com/gympro/gympro-client/internal/domain/settings"
)

type Settings struct {
	*Screen
	svc     *settings.Service
	current settings.Settings
}

func NewSettings(parent context.Context, s *settings.Service, log *slog.Logger) *Settings {
	return &Settings{Screen: New(parent, "settings", log), svc: s}
}

func (s *Settings) Load() error { return s.Screen.Load(Into(&s.current, s.svc.Get)) }

func (s *Settings) Current() settings.Settings { return s.current }

func (s *Settings) Save(st settings.Settings) error {
	if _, err := s.svc.Update(s.ctx, st); err != nil {
		return s.guard(err)
	}
	return s.Load()
}
