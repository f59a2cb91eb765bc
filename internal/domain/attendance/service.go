package attendance

import (
	"context"
	"errors"
	"math"
	"net/url"

	"github.com/gympro/gympro-client/internal/api"
)

var ErrAlreadyCheckedOut = errors.New("attendance: visit already checked out")

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

// List returns records for date (YYYY-MM-DD); an empty date lists all.
func (s *Service) List(ctx context.Context, date string) ([]Record, error) {
	path := "/attendance"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out []Record
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Mine(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := s.api.Get(ctx, "/attendance/me", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type checkInRequest struct {
	MemberID api.ID `json:"memberId"`
}

func (s *Service) CheckIn(ctx context.Context, memberID api.ID) (Record, error) {
	var r Record
	if err := s.api.Post(ctx, "/attendance/checkin", checkInRequest{MemberID: memberID}, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) CheckOut(ctx context.Context, rec Record) (Record, error) {
	if !rec.Open() {
		return rec, ErrAlreadyCheckedOut
	}
	var r Record
	if err := s.api.Post(ctx, api.Pathf("/attendance/%s/checkout", rec.ID), nil, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// ComputePresence counts active members with at least one record on day.
// Members that are not in activeIDs do not count as present. With no
// active members the rate is 0.
func ComputePresence(activeIDs []api.ID, records []Record, day string) Presence {
	active := make(map[api.ID]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}
	seen := map[api.ID]bool{}
	for _, r := range records {
		if r.Date == day && active[r.MemberID] {
			seen[r.MemberID] = true
		}
	}
	p := Presence{Active: len(active), Present: len(seen)}
	p.Absent = p.Active - p.Present
	if p.Active > 0 {
		p.Rate = int(math.Round(100 * float64(p.Present) / float64(p.Active)))
	}
	return p
}
