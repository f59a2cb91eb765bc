// Package reports fetches the pre-aggregated analytics series. The backend
// does all the counting; nothing here computes beyond decoding.
package reports

import (
	"context"

	"github.com/gympro/gympro-client/internal/api"
)

type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MembershipShare struct {
	Plan    string `json:"plan"`
	Members int    `json:"members"`
}

type AttendancePoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type ProductSale struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type Service struct{ api *api.Client }

func NewService(c *api.Client) *Service { return &Service{api: c} }

func (s *Service) Revenue(ctx context.Context) ([]RevenuePoint, error) {
	var out []RevenuePoint
	if err := s.api.Get(ctx, "/reports/revenue", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Membership(ctx context.Context) ([]MembershipShare, error) {
	var out []MembershipShare
	if err := s.api.Get(ctx, "/reports/membership", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Attendance(ctx context.Context) ([]AttendancePoint, error) {
	var out []AttendancePoint
	if err := s.api.Get(ctx, "/reports/attendance", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Products(ctx context.Context) ([]ProductSale, error) {
	var out []ProductSale
	if err := s.api.Get(ctx, "/reports/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}
