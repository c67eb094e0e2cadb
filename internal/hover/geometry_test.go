package hover

import "testing"

func TestPosition(t *testing.T) {
	anchor := Rect{Top: 100, Left: 50, Width: 80, Height: 20}

	cases := []struct {
		placement Placement
		want      Point
	}{
		{PlaceBottom, Point{Top: 128, Left: 50}},
		{PlaceTop, Point{Top: 92, Left: 50}},
		{PlaceLeft, Point{Top: 100, Left: 42}},
		{PlaceRight, Point{Top: 100, Left: 138}},
	}
	for _, tc := range cases {
		if got := Position(anchor, tc.placement, DefaultOffset); got != tc.want {
			t.Errorf("Position(%s) = %+v, want %+v", tc.placement, got, tc.want)
		}
	}
}

func TestClampToViewport(t *testing.T) {
	const vw, vh = 1280.0, 720.0

	// Fits as-is.
	p := ClampToViewport(Point{Top: 100, Left: 100}, 300, 200, vw, vh, DefaultPadding)
	if p != (Point{Top: 100, Left: 100}) {
		t.Errorf("p = %+v, in-bounds point must not move", p)
	}

	// Overflows the right edge.
	p = ClampToViewport(Point{Top: 100, Left: 1100}, 300, 200, vw, vh, DefaultPadding)
	if p.Left != vw-300-DefaultPadding {
		t.Errorf("Left = %v", p.Left)
	}

	// Overflows the bottom edge.
	p = ClampToViewport(Point{Top: 650, Left: 100}, 300, 200, vw, vh, DefaultPadding)
	if p.Top != vh-200-DefaultPadding {
		t.Errorf("Top = %v", p.Top)
	}

	// Off the top-left corner clamps to the padding.
	p = ClampToViewport(Point{Top: -50, Left: -50}, 300, 200, vw, vh, DefaultPadding)
	if p != (Point{Top: DefaultPadding, Left: DefaultPadding}) {
		t.Errorf("p = %+v", p)
	}
}
