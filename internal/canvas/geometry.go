package canvas

// DefaultLineEps is the vertical tolerance, in canvas units, within which two
// items are considered to sit on the same visual line for reading-order
// purposes.
const DefaultLineEps = 20.0

// Rect is an axis-aligned rectangle in canvas coordinates (y grows downward).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// ContainsPoint reports whether the point lies inside the rectangle,
// boundaries included.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x <= r.Right() &&
		y >= r.Y && y <= r.Bottom()
}

// Overlaps reports whether two rectangles intersect. True unless the boxes
// are fully separated on some axis.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.Right() < other.X ||
		r.X > other.Right() ||
		r.Bottom() < other.Y ||
		r.Y > other.Bottom())
}

// Positioned is anything with a canvas rectangle. Both Element and Section
// satisfy it.
type Positioned interface {
	Bounds() Rect
}

// BoundingBox returns the minimal rectangle covering every item, or nil for an
// empty input.
func BoundingBox[T Positioned](items []T) *Rect {
	if len(items) == 0 {
		return nil
	}

	box := items[0].Bounds()
	for _, item := range items[1:] {
		b := item.Bounds()
		if b.X < box.X {
			box.Width = box.Right() - b.X
			box.X = b.X
		}
		if b.Y < box.Y {
			box.Height = box.Bottom() - b.Y
			box.Y = b.Y
		}
		if b.Right() > box.Right() {
			box.Width = b.Right() - box.X
		}
		if b.Bottom() > box.Bottom() {
			box.Height = b.Bottom() - box.Y
		}
	}
	return &box
}

// CompareReadingOrder orders two rectangles the way a human reads the page:
// top-to-bottom, then left-to-right. Items whose vertical distance is below
// lineEps count as the same line and sort by ascending x.
//
// Known limitation: near the epsilon boundary this comparison is not
// transitive (three items can straddle the threshold pairwise). Callers must
// apply it in a single stable sort and never compose pairwise results;
// "fixing" the comparison would change the visual semantics.
func CompareReadingOrder(a, b Rect, lineEps float64) int {
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dy < lineEps {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	default:
		return 0
	}
}
