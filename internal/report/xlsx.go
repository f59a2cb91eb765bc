package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

func sheets(t Type, d Data) []sheet {
	var out []sheet
	if t == Complete {
		s := sheet{name: "Overview", header: []interface{}{"metric", "value"}}
		for _, st := range overviewStats(d) {
			s.rows = append(s.rows, []interface{}{st.label, st.value})
		}
		out = append(out, s)
	}
	if t == Revenue || t == Complete {
		s := sheet{name: "Revenue", header: []interface{}{"month", "revenue"}}
		for _, p := range d.Revenue {
			s.rows = append(s.rows, []interface{}{p.Month, p.Revenue})
		}
		out = append(out, s)
	}
	if t == Membership || t == Complete {
		total := 0.0
		for _, m := range d.Membership {
			total += float64(m.Members)
		}
		s := sheet{name: "Membership", header: []interface{}{"plan", "members", "share_percent"}}
		for _, m := range d.Membership {
			s.rows = append(s.rows, []interface{}{m.Plan, m.Members, Percent(float64(m.Members), total)})
		}
		out = append(out, s)
	}
	if t == Attendance || t == Complete {
		s := sheet{name: "Attendance", header: []interface{}{"day", "check_ins"}}
		for _, p := range d.Attendance {
			s.rows = append(s.rows, []interface{}{p.Day, p.Count})
		}
		out = append(out, s)
	}
	if t == Products || t == Complete {
		s := sheet{name: "Products", header: []interface{}{"rank", "product", "units", "revenue"}}
		for i, p := range d.Products {
			s.rows = append(s.rows, []interface{}{i + 1, p.Name, p.Quantity, p.Revenue})
		}
		out = append(out, s)
	}
	return out
}

// Workbook writes one sheet per series of the report type.
func Workbook(t Type, d Data) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	for i, s := range sheets(t, d) {
		if i == 0 {
			if err := f.SetSheetName(first, s.name); err != nil {
				return nil, fmt.Errorf("sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
		if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
			return nil, fmt.Errorf("sheet %s header: %w", s.name, err)
		}
		for j, r := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(s.name, cell, &r); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", s.name, j+2, err)
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
