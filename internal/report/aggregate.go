package report

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/reports"
)

const (
	revenueMonths = 12
	topProducts   = 10
)

// Source is the backend side of an export.
type Source interface {
	Revenue(ctx context.Context) ([]reports.RevenuePoint, error)
	Membership(ctx context.Context) ([]reports.MembershipShare, error)
	Attendance(ctx context.Context) ([]reports.AttendancePoint, error)
	Products(ctx context.Context) ([]reports.ProductSale, error)
}

type StatsSource interface {
	Stats(ctx context.Context) (dashboard.Stats, error)
}

type Aggregator struct {
	src   Source
	stats StatsSource
}

func NewAggregator(src Source, stats StatsSource) *Aggregator {
	return &Aggregator{src: src, stats: stats}
}

// Collect fetches the series a report type needs in parallel. Any failure
// fails the whole collection.
func (a *Aggregator) Collect(ctx context.Context, t Type) (Data, error) {
	var d Data
	g, ctx := errgroup.WithContext(ctx)
	want := func(k Type) bool { return t == k || t == Complete }

	if want(Revenue) {
		g.Go(func() (err error) { d.Revenue, err = a.src.Revenue(ctx); return })
	}
	if want(Membership) {
		g.Go(func() (err error) { d.Membership, err = a.src.Membership(ctx); return })
	}
	if want(Attendance) {
		g.Go(func() (err error) { d.Attendance, err = a.src.Attendance(ctx); return })
	}
	if want(Products) {
		g.Go(func() (err error) { d.Products, err = a.src.Products(ctx); return })
	}
	if t == Complete && a.stats != nil {
		g.Go(func() error {
			st, err := a.stats.Stats(ctx)
			if err != nil {
				return err
			}
			d.Stats = &st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Data{}, err
	}

	d.Revenue = chronological(d.Revenue)
	if len(d.Products) > topProducts {
		d.Products = d.Products[:topProducts]
	}
	return d, nil
}

// chronological turns the newest-first revenue series into the last twelve
// months, oldest first.
func chronological(pts []reports.RevenuePoint) []reports.RevenuePoint {
	out := slices.Clone(pts)
	slices.Reverse(out)
	if len(out) > revenueMonths {
		out = out[len(out)-revenueMonths:]
	}
	return out
}
