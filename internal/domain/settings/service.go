package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrInvalid = errors.New("settings: gym name is required and reminder days must be between 0 and 60")

type Settings struct {
	GymName            string  `json:"gymName"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	Currency           string  `json:"currency"`
	ReminderDaysBefore int     `json:"reminderDaysBefore"`
	OpeningHours       *string `json:"openingHours,omitempty"`
	EmailNotifications bool    `json:"emailNotifications"`
}

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) Get(ctx context.Context) (Settings, error) {
	var st Settings
	if err := s.api.Get(ctx, "/settings", &st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, st Settings) (Settings, error) {
	var out Settings
	if strings.TrimSpace(st.GymName) == "" || st.ReminderDaysBefore < 0 || st.ReminderDaysBefore > 60 {
		return out, ErrInvalid
	}
	if err := s.api.Put(ctx, "/settings", st, &out); err != nil {
		return Settings{}, err
	}
	return out, nil
}
