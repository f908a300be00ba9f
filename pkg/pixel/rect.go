package pixel

import "fmt"

// Size is a width/height pair.
type Size struct {
	Width  uint32
	Height uint32
}

// String renders "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle. Selection rectangles always live in the
// coordinate space of the sink frame, origin top-left.
type Rect struct {
	Left   uint32
	Top    uint32
	Width  uint32
	Height uint32
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// String renders "WxH@(left,top)", the layout used in selection logs.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.Left, r.Top)
}

// WithMinSize grows width/height up to min where they fall short. Position
// is untouched; callers follow up with MapInside to pull an enlarged
// rectangle back into bounds.
func (r Rect) WithMinSize(min Size) Rect {
	if r.Width < min.Width {
		r.Width = min.Width
	}
	if r.Height < min.Height {
		r.Height = min.Height
	}
	return r
}

// MapInside clamps the rectangle's size to the boundary's size and then
// translates it so it lies entirely inside the boundary.
func (r Rect) MapInside(boundary Rect) Rect {
	if r.Width > boundary.Width {
		r.Width = boundary.Width
	}
	if r.Height > boundary.Height {
		r.Height = boundary.Height
	}
	if r.Left < boundary.Left {
		r.Left = boundary.Left
	}
	if r.Top < boundary.Top {
		r.Top = boundary.Top
	}
	if r.Left+r.Width > boundary.Left+boundary.Width {
		r.Left = boundary.Left + boundary.Width - r.Width
	}
	if r.Top+r.Height > boundary.Top+boundary.Height {
		r.Top = boundary.Top + boundary.Height - r.Height
	}
	return r
}

// Inside reports whether the rectangle lies entirely within the boundary.
func (r Rect) Inside(boundary Rect) bool {
	return r.Left >= boundary.Left && r.Top >= boundary.Top &&
		r.Left+r.Width <= boundary.Left+boundary.Width &&
		r.Top+r.Height <= boundary.Top+boundary.Height
}
