package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontRegular = "regular"
	fontBold    = "bold"
	ptPerMM     = 72 / 25.4
)

// PDFCanvas draws onto a gopdf document. gopdf works in points; every
// coordinate crossing this type is in millimetres.
type PDFCanvas struct {
	pdf *gopdf.GoPdf
}

// NewPDFCanvas embeds the Go fonts, or regular.ttf and bold.ttf from
// fontDir when it is set.
func NewPDFCanvas(fontDir string) (*PDFCanvas, error) {
	pdf := new(gopdf.GoPdf)
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	regular, bold := goregular.TTF, gobold.TTF
	if fontDir != "" {
		var err error
		if regular, err = os.ReadFile(filepath.Join(fontDir, "regular.ttf")); err != nil {
			return nil, fmt.Errorf("load regular font: %w", err)
		}
		if bold, err = os.ReadFile(filepath.Join(fontDir, "bold.ttf")); err != nil {
			return nil, fmt.Errorf("load bold font: %w", err)
		}
	}
	if err := pdf.AddTTFFontData(fontRegular, regular); err != nil {
		return nil, fmt.Errorf("add regular font: %w", err)
	}
	if err := pdf.AddTTFFontData(fontBold, bold); err != nil {
		return nil, fmt.Errorf("add bold font: %w", err)
	}
	return &PDFCanvas{pdf: pdf}, nil
}

func pt(mm float64) float64 { return mm * ptPerMM }

func (c *PDFCanvas) AddPage() error {
	c.pdf.AddPage()
	return nil
}

func (c *PDFCanvas) Pages() int { return c.pdf.GetNumberOfPages() }

func (c *PDFCanvas) SetPage(n int) error { return c.pdf.SetPage(n) }

func (c *PDFCanvas) Rect(x, y, w, h float64, fill Color) error {
	c.pdf.SetFillColor(fill.R, fill.G, fill.B)
	c.pdf.RectFromUpperLeftWithStyle(pt(x), pt(y), pt(w), pt(h), "F")
	return nil
}

func (c *PDFCanvas) RoundedRect(x, y, w, h, radius float64, fill Color) error {
	c.pdf.SetFillColor(fill.R, fill.G, fill.B)
	return c.pdf.Rectangle(pt(x), pt(y), pt(x+w), pt(y+h), "F", pt(radius), 8)
}

func (c *PDFCanvas) font(f Font) error {
	family := fontRegular
	if f.Bold {
		family = fontBold
	}
	if err := c.pdf.SetFont(family, "", f.Size); err != nil {
		return err
	}
	c.pdf.SetTextColor(f.Color.R, f.Color.G, f.Color.B)
	return nil
}

func (c *PDFCanvas) Text(x, y float64, s string, f Font) error {
	if err := c.font(f); err != nil {
		return err
	}
	c.pdf.SetXY(pt(x), pt(y))
	return c.pdf.Cell(nil, s)
}

func (c *PDFCanvas) TextWidth(s string, f Font) (float64, error) {
	if err := c.font(f); err != nil {
		return 0, err
	}
	w, err := c.pdf.MeasureTextWidth(s)
	if err != nil {
		return 0, err
	}
	return w / ptPerMM, nil
}

func (c *PDFCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.pdf.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
