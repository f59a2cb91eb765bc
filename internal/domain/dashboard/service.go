package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

type Stats struct {
	TotalMembers    int             `json:"totalMembers"`
	ActiveMembers   int             `json:"activeMembers"`
	ExpiredMembers  int             `json:"expiredMembers"`
	PendingMembers  int             `json:"pendingMembers"`
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
	PendingDues     decimal.Decimal `json:"pendingDues"`
	TodayAttendance int             `json:"todayAttendance"`
	ExpiringSoon    int             `json:"expiringSoon"`
}

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.api.Get(ctx, "/dashboard/stats", &st); err != nil {
		return Stats{}, err
	}
	return st, nil
}
