package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/infra/metrics"
)

type Result struct {
	Name     string
	Location string
	Size     int
}

type Exporter struct {
	agg     *Aggregator
	sink    Sink
	brand   string
	fontDir string
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type ExporterOption func(*Exporter)

func WithBrand(b string) ExporterOption             { return func(e *Exporter) { e.brand = b } }
func WithFontDir(dir string) ExporterOption         { return func(e *Exporter) { e.fontDir = dir } }
func WithLogger(l *slog.Logger) ExporterOption      { return func(e *Exporter) { e.log = l } }
func WithMetrics(m *metrics.Metrics) ExporterOption { return func(e *Exporter) { e.metrics = m } }
func WithClock(now func() time.Time) ExporterOption { return func(e *Exporter) { e.now = now } }

func NewExporter(agg *Aggregator, sink Sink, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		agg:   agg,
		sink:  sink,
		brand: "GymPro",
		log:   logger.Discard(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export collects, renders and stores one document. Every failure is
// returned unchanged in kind so the caller can show its "export failed"
// notice; nothing is retried.
func (e *Exporter) Export(ctx context.Context, t Type, f Format) (res Result, err error) {
	defer func() { e.metrics.ReportExported(string(t), string(f), err) }()

	d, err := e.agg.Collect(ctx, t)
	if err != nil {
		return res, fmt.Errorf("collect %s: %w", t, err)
	}
	now := e.now()
	data, err := e.Document(t, f, d, now)
	if err != nil {
		return res, fmt.Errorf("render %s: %w", t, err)
	}

	res.Name = FileName(e.brand, t, f, now)
	res.Size = len(data)
	if res.Location, err = e.sink.Save(ctx, res.Name, data); err != nil {
		return res, fmt.Errorf("save %s: %w", res.Name, err)
	}
	e.log.Info("report exported", "type", t, "format", f, "location", res.Location, "bytes", res.Size)
	return res, nil
}

func (e *Exporter) Document(t Type, f Format, d Data, now time.Time) ([]byte, error) {
	if f == XLSX {
		return Workbook(t, d)
	}
	c, err := NewPDFCanvas(e.fontDir)
	if err != nil {
		return nil, err
	}
	r := Renderer{Brand: e.brand, Now: func() time.Time { return now }}
	if err := r.Render(c, t, d); err != nil {
		return nil, err
	}
	return c.Bytes()
}
