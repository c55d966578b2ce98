package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height int
}

func NewRect(x, y float64, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// BB converts the rect into chipmunk bounds. Screen space grows downward, so
// B holds the top edge and T the bottom edge.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + float64(r.Width), T: r.Y + float64(r.Height)}
}

// Overlaps reports whether the rects overlap or share an edge.
func (r Rect) Overlaps(other Rect) bool {
	return r.BB().Intersects(other.BB())
}

// Offset returns a copy of r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// ContainsPoint reports whether (x, y) lies inside r, edges included.
func (r Rect) ContainsPoint(x, y float64) bool {
	return r.BB().ContainsVect(cp.Vector{X: x, Y: y})
}

func (r Rect) Right() float64 {
	return r.X + float64(r.Width)
}

func (r Rect) Bottom() float64 {
	return r.Y + float64(r.Height)
}

// Overlaps is the inclusive AABB test every collision query reduces to.
func Overlaps(ax, ay float64, aw, ah int, bx, by float64, bw, bh int) bool {
	return NewRect(ax, ay, aw, ah).Overlaps(NewRect(bx, by, bw, bh))
}
