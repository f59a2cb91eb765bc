package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Page geometry in millimetres, A4 portrait.
const (
	pageW      = 210.0
	pageH      = 297.0
	margin     = 15.0
	contentW   = pageW - 2*margin
	headerH    = 40.0
	boxTop     = 50.0
	boxH       = 25.0
	boxGutter  = 5.0
	firstTop   = 85.0
	topOnNew   = 20.0
	pageBreakY = 230.0
	rowH       = 8.0
	barH       = 4.0
	barPad     = 2.0
	footerY    = 284.0
)

// BarWidth scales value against the largest value of its series. The
// maximum is floored at 1 so an empty or all-zero series draws nothing
// instead of dividing by zero.
func BarWidth(value, max, full float64) float64 {
	if value <= 0 {
		return 0
	}
	ratio := value / math.Max(max, 1)
	return full * ratio
}

// Percent is value's share of total, with total floored at 1.
func Percent(value, total float64) float64 {
	return 100 * value / math.Max(total, 1)
}

func PercentLabel(value, total float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(Percent(value, total))))
}

// StatBoxWidth divides the content width between n boxes and their gutters.
func StatBoxWidth(n int) float64 {
	if n <= 0 {
		return 0
	}
	return (contentW - boxGutter*float64(n-1)) / float64(n)
}

func maxOf(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

func sum(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s
}

// Money formats whole rupees with thousands separators.
func Money(v float64) string {
	return "Rs. " + grouped(int64(math.Round(v)))
}

func grouped(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
