package hover

// Rect is an axis-aligned box in viewport coordinates.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }
func (r Rect) Right() float64  { return r.Left + r.Width }

// Point is a top-left placement position.
type Point struct {
	Top  float64
	Left float64
}

// Placement selects which side of the anchor the popover goes on.
type Placement string

const (
	PlaceTop    Placement = "top"
	PlaceBottom Placement = "bottom"
	PlaceLeft   Placement = "left"
	PlaceRight  Placement = "right"
)

const (
	// DefaultOffset is the gap between anchor and popover.
	DefaultOffset = 8.0
	// DefaultPadding keeps the popover clear of the viewport edges.
	DefaultPadding = 16.0
)

// Position computes where a popover goes relative to its anchor.
func Position(anchor Rect, placement Placement, offset float64) Point {
	switch placement {
	case PlaceTop:
		return Point{Top: anchor.Top - offset, Left: anchor.Left}
	case PlaceLeft:
		return Point{Top: anchor.Top, Left: anchor.Left - offset}
	case PlaceRight:
		return Point{Top: anchor.Top, Left: anchor.Right() + offset}
	default:
		return Point{Top: anchor.Bottom() + offset, Left: anchor.Left}
	}
}

// ClampToViewport shifts a position so a popover of the given size stays
// inside the viewport with edge padding on every side.
func ClampToViewport(p Point, width, height, viewportW, viewportH, padding float64) Point {
	if p.Left+width > viewportW-padding {
		p.Left = viewportW - width - padding
	}
	if p.Left < padding {
		p.Left = padding
	}
	if p.Top+height > viewportH-padding {
		p.Top = viewportH - height - padding
	}
	if p.Top < padding {
		p.Top = padding
	}
	return p
}
