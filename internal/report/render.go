package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gympro/gympro-client/internal/domain/reports"
)

type stat struct{ label, value string }

type column struct {
	title string
	width float64
	bar   bool
}

type table struct {
	title string
	cols  []column
	rows  [][]string
	bars  []float64
}

// Renderer lays a report out on a Canvas: banner, stat boxes, then one
// table section per series. The page is only ever broken before a section,
// never inside a table.
type Renderer struct {
	Brand string
	Now   func() time.Time
}

func (r Renderer) Render(c Canvas, t Type, d Data) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	p := &painter{c: c}
	if err := c.AddPage(); err != nil {
		return err
	}
	p.banner(r.Brand, t.Title(), now())

	stats, sections := build(t, d)
	p.boxes(stats)
	p.y = firstTop
	for i, s := range sections {
		if i > 0 && p.y > pageBreakY {
			p.newPage()
		}
		p.section(s)
	}
	p.footers(r.Brand)
	return p.err
}

func build(t Type, d Data) ([]stat, []table) {
	switch t {
	case Revenue:
		return revenueStats(d.Revenue), []table{revenueTable(d.Revenue)}
	case Membership:
		return membershipStats(d.Membership), []table{membershipTable(d.Membership)}
	case Attendance:
		return attendanceStats(d.Attendance), []table{attendanceTable(d.Attendance)}
	case Products:
		return productStats(d.Products), []table{productTable(d.Products)}
	}
	return overviewStats(d), []table{
		revenueTable(d.Revenue),
		membershipTable(d.Membership),
		attendanceTable(d.Attendance),
		productTable(d.Products),
	}
}

// painter carries the cursor and the first drawing error; once err is set
// every further call is a no-op.
type painter struct {
	c   Canvas
	y   float64
	err error
}

func (p *painter) rect(x, y, w, h float64, fill Color) {
	if p.err == nil {
		p.err = p.c.Rect(x, y, w, h, fill)
	}
}

func (p *painter) text(x, y float64, s string, f Font) {
	if p.err == nil {
		p.err = p.c.Text(x, y, s, f)
	}
}

func (p *painter) newPage() {
	if p.err == nil {
		p.err = p.c.AddPage()
	}
	p.y = topOnNew
}

func (p *painter) banner(brand, title string, at time.Time) {
	p.rect(0, 0, pageW, headerH, colorBrand)
	p.text(margin, 10, brand, Font{Size: 22, Bold: true, Color: colorWhite})
	p.text(margin, 22, title, Font{Size: 14, Color: colorWhite})
	p.text(margin, 31, "Generated on "+at.Format("02 Jan 2006, 15:04"), Font{Size: 9, Color: colorWhite})
}

func (p *painter) boxes(stats []stat) {
	w := StatBoxWidth(len(stats))
	for i, s := range stats {
		x := margin + float64(i)*(w+boxGutter)
		if p.err == nil {
			p.err = p.c.RoundedRect(x, boxTop, w, boxH, 3, colorBox)
		}
		p.text(x+4, boxTop+5, s.label, Font{Size: 8, Color: colorMuted})
		p.text(x+4, boxTop+13, s.value, Font{Size: 14, Bold: true, Color: colorDark})
	}
}

func (p *painter) section(t table) {
	p.rect(margin, p.y, 3, 7, colorBrand)
	p.text(margin+6, p.y, t.title, Font{Size: 13, Bold: true, Color: colorDark})
	p.y += 11

	p.rect(margin, p.y, contentW, rowH, colorDark)
	x := margin
	for _, col := range t.cols {
		p.text(x+2, p.y+2, col.title, Font{Size: 9, Bold: true, Color: colorWhite})
		x += col.width
	}
	p.y += rowH

	if len(t.rows) == 0 {
		p.text(margin+2, p.y+2, "No data available", Font{Size: 9, Color: colorMuted})
		p.y += rowH
	}
	top := maxOf(t.bars)
	for i, row := range t.rows {
		if i%2 == 1 {
			p.rect(margin, p.y, contentW, rowH, colorStripe)
		}
		x := margin
		for j, col := range t.cols {
			if col.bar {
				full := col.width - 2*barPad
				by := p.y + (rowH-barH)/2
				p.rect(x+barPad, by, full, barH, colorTrack)
				if w := BarWidth(t.bars[i], top, full); w > 0 {
					p.rect(x+barPad, by, w, barH, colorBar)
				}
			} else if j < len(row) {
				p.text(x+2, p.y+2, row[j], Font{Size: 9, Color: colorDark})
			}
			x += col.width
		}
		p.y += rowH
	}
	p.y += 8
}

// footers runs after the body so the total page count is known.
func (p *painter) footers(brand string) {
	if p.err != nil {
		return
	}
	n := p.c.Pages()
	f := Font{Size: 8, Color: colorMuted}
	for i := 1; i <= n; i++ {
		if p.err = p.c.SetPage(i); p.err != nil {
			return
		}
		p.rect(margin, footerY-3, contentW, 0.3, colorRule)
		p.text(margin, footerY, "Confidential - "+brand+" internal report", f)
		label := fmt.Sprintf("Page %d of %d", i, n)
		w, err := p.c.TextWidth(label, f)
		if err != nil {
			p.err = err
			return
		}
		p.text(pageW-margin-w, footerY, label, f)
	}
}

func revenueStats(pts []reports.RevenuePoint) []stat {
	vals := make([]float64, len(pts))
	for i, pt := range pts {
		vals[i] = pt.Revenue
	}
	total := sum(vals)
	best := "-"
	if i := argmax(vals); i >= 0 {
		best = pts[i].Month
	}
	return []stat{
		{"Total Revenue", Money(total)},
		{"Average / Month", Money(total / math.Max(float64(len(pts)), 1))},
		{"Best Month", best},
	}
}

func revenueTable(pts []reports.RevenuePoint) table {
	t := table{
		title: "Monthly Revenue",
		cols:  []column{{"Month", 40, false}, {"Revenue", 50, false}, {"Trend", contentW - 90, true}},
	}
	for _, pt := range pts {
		t.rows = append(t.rows, []string{pt.Month, Money(pt.Revenue)})
		t.bars = append(t.bars, pt.Revenue)
	}
	return t
}

func membershipStats(shares []reports.MembershipShare) []stat {
	vals := make([]float64, len(shares))
	for i, s := range shares {
		vals[i] = float64(s.Members)
	}
	popular := "-"
	if i := argmax(vals); i >= 0 {
		popular = shares[i].Plan
	}
	return []stat{
		{"Total Members", strconv.Itoa(int(sum(vals)))},
		{"Plans", strconv.Itoa(len(shares))},
		{"Most Popular", popular},
	}
}

func membershipTable(shares []reports.MembershipShare) table {
	t := table{
		title: "Membership Distribution",
		cols: []column{
			{"Plan", 50, false}, {"Members", 30, false}, {"Share", 30, false},
			{"Distribution", contentW - 110, true},
		},
	}
	total := 0.0
	for _, s := range shares {
		total += float64(s.Members)
	}
	for _, s := range shares {
		n := float64(s.Members)
		t.rows = append(t.rows, []string{s.Plan, strconv.Itoa(s.Members), PercentLabel(n, total)})
		t.bars = append(t.bars, n)
	}
	return t
}

func attendanceStats(pts []reports.AttendancePoint) []stat {
	vals := make([]float64, len(pts))
	for i, pt := range pts {
		vals[i] = float64(pt.Count)
	}
	total := sum(vals)
	peak := "-"
	if i := argmax(vals); i >= 0 {
		peak = pts[i].Day
	}
	return []stat{
		{"Total Check-ins", strconv.Itoa(int(total))},
		{"Daily Average", strconv.Itoa(int(math.Round(total / math.Max(float64(len(pts)), 1))))},
		{"Peak Day", peak},
	}
}

func attendanceTable(pts []reports.AttendancePoint) table {
	t := table{
		title: "Attendance by Day",
		cols:  []column{{"Day", 40, false}, {"Check-ins", 40, false}, {"Trend", contentW - 80, true}},
	}
	for _, pt := range pts {
		t.rows = append(t.rows, []string{pt.Day, strconv.Itoa(pt.Count)})
		t.bars = append(t.bars, float64(pt.Count))
	}
	return t
}

func productStats(items []reports.ProductSale) []stat {
	units, revenue := 0, 0.0
	for _, it := range items {
		units += it.Quantity
		revenue += it.Revenue
	}
	top := "-"
	if len(items) > 0 {
		top = items[0].Name
	}
	return []stat{
		{"Units Sold", strconv.Itoa(units)},
		{"Product Revenue", Money(revenue)},
		{"Top Seller", top},
	}
}

// productTable ranks by input order, the backend already sorts.
func productTable(items []reports.ProductSale) table {
	t := table{
		title: "Top Products",
		cols: []column{
			{"Rank", 18, false}, {"Product", 62, false}, {"Units", 22, false},
			{"Revenue", 35, false}, {"Sales", contentW - 137, true},
		},
	}
	for i, it := range items {
		t.rows = append(t.rows, []string{
			"#" + strconv.Itoa(i+1), it.Name, strconv.Itoa(it.Quantity), Money(it.Revenue),
		})
		t.bars = append(t.bars, it.Revenue)
	}
	return t
}

func overviewStats(d Data) []stat {
	var s statsView
	if d.Stats != nil {
		s = statsView{
			total:   d.Stats.TotalMembers,
			active:  d.Stats.ActiveMembers,
			revenue: d.Stats.MonthlyRevenue.InexactFloat64(),
			today:   d.Stats.TodayAttendance,
		}
	}
	return []stat{
		{"Total Members", strconv.Itoa(s.total)},
		{"Active Members", strconv.Itoa(s.active)},
		{"Monthly Revenue", Money(s.revenue)},
		{"Today's Attendance", strconv.Itoa(s.today)},
	}
}

type statsView struct {
	total, active, today int
	revenue              float64
}

func argmax(vals []float64) int {
	best := -1
	for i, v := range vals {
		if best < 0 || v > vals[best] {
			best = i
		}
	}
	return best
}
