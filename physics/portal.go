package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
)

const (
	// PortalLength is the size of a portal along the surface it sits on.
	PortalLength = 80
	// PortalDepth is the size of a portal perpendicular to its surface.
	PortalDepth = 10
	// exitOffset keeps a body clear of the exit portal's footprint.
	exitOffset = 10
)

// Color identifies one half of a portal pair.
type Color int

const (
	ColorA Color = iota
	ColorB
)

func (c Color) Other() Color {
	if c == ColorA {
		return ColorB
	}
	return ColorA
}

func (c Color) String() string {
	switch c {
	case ColorA:
		return "A"
	case ColorB:
		return "B"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Orientation is the side of its host obstacle a portal faces.
type Orientation int

const (
	FromLeft Orientation = iota
	FromRight
	FromTop
	FromBottom
)

func (o Orientation) String() string {
	switch o {
	case FromLeft:
		return "from_left"
	case FromRight:
		return "from_right"
	case FromTop:
		return "from_top"
	case FromBottom:
		return "from_bottom"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Horizontal reports whether the portal lies along a horizontal surface.
func (o Orientation) Horizontal() bool {
	return o == FromTop || o == FromBottom
}

// PortalSize returns the footprint of a portal with the given orientation.
func PortalSize(o Orientation) (w, h int) {
	if o.Horizontal() {
		return PortalLength, PortalDepth
	}
	return PortalDepth, PortalLength
}

// Portal is one mouth of a pair. Pos is the centre of the mouth on the host
// surface.
type Portal struct {
	Color       Color
	Pos         cp.Vector
	Width       int
	Height      int
	Orientation Orientation
	// Host is the obstacle the portal was placed on.
	Host *Obstacle
}

func NewPortal(color Color, pos cp.Vector, orientation Orientation, host *Obstacle) *Portal {
	w, h := PortalSize(orientation)
	return &Portal{
		Color:       color,
		Pos:         pos,
		Width:       w,
		Height:      h,
		Orientation: orientation,
		Host:        host,
	}
}

// Touching treats Pos as the top-left of the footprint. It is only used to
// stop a new portal from being stacked on this one.
func (p *Portal) Touching(r common.Rect) bool {
	return common.NewRect(p.Pos.X, p.Pos.Y, p.Width, p.Height).Overlaps(r)
}

// Entering reports whether r is passing into the portal: fully inside the
// mouth along its length and touching it across its depth.
func (p *Portal) Entering(r common.Rect) bool {
	halfW, halfH := common.Half(p.Width), common.Half(p.Height)
	left, right := p.Pos.X-halfW, p.Pos.X+halfW
	top, bottom := p.Pos.Y-halfH, p.Pos.Y+halfH

	if p.Orientation.Horizontal() {
		return r.Right() <= right && r.X >= left &&
			r.Bottom() >= top && r.Y <= bottom
	}
	return r.Right() >= left && r.X <= right &&
		r.Bottom() <= bottom && r.Y >= top
}

// Decompose splits vel into the component travelling into the portal (inV)
// and the component along its surface (crossV).
func (p *Portal) Decompose(vel cp.Vector) (inV, crossV float64) {
	switch p.Orientation {
	case FromLeft:
		return vel.X, -vel.Y
	case FromRight:
		return -vel.X, vel.Y
	case FromTop:
		return vel.Y, vel.X
	case FromBottom:
		return -vel.Y, -vel.X
	}
	return 0, 0
}

// Recompose is the inverse of Decompose for a body of size w x h leaving
// this portal. It returns the body's new top-left position and velocity.
func (p *Portal) Recompose(inV, crossV float64, w, h int) (pos, vel cp.Vector) {
	switch p.Orientation {
	case FromLeft:
		pos = cp.Vector{X: p.Pos.X - float64(w) - exitOffset, Y: p.Pos.Y - common.Half(h)}
		vel = cp.Vector{X: -inV, Y: crossV}
	case FromRight:
		pos = cp.Vector{X: p.Pos.X + exitOffset, Y: p.Pos.Y - common.Half(h)}
		vel = cp.Vector{X: inV, Y: -crossV}
	case FromTop:
		pos = cp.Vector{X: p.Pos.X - common.Half(w), Y: p.Pos.Y - float64(h) - exitOffset}
		vel = cp.Vector{X: -crossV, Y: -inV}
	case FromBottom:
		pos = cp.Vector{X: p.Pos.X - common.Half(w), Y: p.Pos.Y + exitOffset}
		vel = cp.Vector{X: crossV, Y: inV}
	}
	return pos, vel
}

// Transport moves t from in to out, carrying its momentum across.
func Transport(t Traveller, in, out *Portal) {
	inV, crossV := in.Decompose(t.Velocity())
	b := t.Bounds()
	pos, vel := out.Recompose(inV, crossV, b.Width, b.Height)
	t.ExitPortal(pos, vel, out.Orientation)
}
