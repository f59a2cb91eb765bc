package report

type Color struct{ R, G, B uint8 }

var (
	colorBrand  = Color{220, 38, 38}
	colorDark   = Color{31, 41, 55}
	colorMuted  = Color{107, 114, 128}
	colorWhite  = Color{255, 255, 255}
	colorBox    = Color{254, 242, 242}
	colorStripe = Color{249, 250, 251}
	colorTrack  = Color{229, 231, 235}
	colorBar    = Color{239, 68, 68}
	colorRule   = Color{209, 213, 219}
)

type Font struct {
	Size  float64
	Bold  bool
	Color Color
}

// Canvas is the drawing surface the layout writes to. Coordinates are
// millimetres from the top left corner; pages are numbered from 1.
type Canvas interface {
	AddPage() error
	Pages() int
	SetPage(n int) error
	Rect(x, y, w, h float64, fill Color) error
	RoundedRect(x, y, w, h, radius float64, fill Color) error
	Text(x, y float64, s string, f Font) error
	TextWidth(s string, f Font) (float64, error)
}
