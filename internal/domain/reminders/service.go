package reminders

import (
	"context"
	"errors"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrNoRecipients = errors.New("reminders: select at least one member")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) Pending(ctx context.Context) ([]Pending, error) {
	var out []Pending
	if err := s.api.Get(ctx, "/reminders/pending", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) SendEmail(ctx context.Context, r EmailRequest) (EmailResult, error) {
	var res EmailResult
	if len(r.MemberIDs) == 0 {
		return res, ErrNoRecipients
	}
	if strings.TrimSpace(r.Subject) == "" {
		r.Subject = "Membership reminder"
	}
	if err := s.api.Post(ctx, "/reminders/email", r, &res); err != nil {
		return EmailResult{}, err
	}
	return res, nil
}
