// Package report turns the backend analytics series into downloadable
// documents: a paginated PDF with bar tables, or a workbook.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/reports"
)

type Type string

const (
	Revenue    Type = "revenue"
	Membership Type = "membership"
	Attendance Type = "attendance"
	Products   Type = "products"
	Complete   Type = "complete"
)

var Types = []Type{Revenue, Membership, Attendance, Products, Complete}

func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("report: unknown type %q", s)
}

func (t Type) Title() string {
	switch t {
	case Revenue:
		return "Revenue Report"
	case Membership:
		return "Membership Report"
	case Attendance:
		return "Attendance Report"
	case Products:
		return "Product Sales Report"
	default:
		return "Complete Analytics Report"
	}
}

type Format string

const (
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PDF, "":
		return PDF, nil
	case XLSX:
		return XLSX, nil
	}
	return "", fmt.Errorf("report: unknown format %q", s)
}

// Data is everything one export needs. Series not used by the report type
// stay nil.
type Data struct {
	Revenue    []reports.RevenuePoint
	Membership []reports.MembershipShare
	Attendance []reports.AttendancePoint
	Products   []reports.ProductSale
	Stats      *dashboard.Stats
}

// FileName is <Brand>_<ReportType>_Report_<YYYY-MM-DD>.<ext>.
func FileName(brand string, t Type, f Format, day time.Time) string {
	brand = strings.Join(strings.Fields(brand), "")
	if brand == "" {
		brand = "GymPro"
	}
	kind := string(t)
	kind = strings.ToUpper(kind[:1]) + kind[1:]
	return fmt.Sprintf("%s_%s_Report_%s.%s", brand, kind, day.Format("2006-01-02"), f)
}
