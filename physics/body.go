package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
)

const (
	// TerminalVelocity caps downward speed in pixels per tick.
	TerminalVelocity = 30
	// Gravity is added to the vertical velocity every tick.
	Gravity = 1
	// velocityFloor is the horizontal speed below which friction stops a body.
	velocityFloor = 0.5
	// maxBackOffSteps bounds a single de-penetration pass.
	maxBackOffSteps = 4096
)

// Body is a dynamic axis-aligned box with velocity and friction.
type Body struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Width    int
	Height   int
	Friction float64

	// displacement applied by the last integration step on each axis
	stepX, stepY float64
}

func NewBody(x, y float64, w, h int, friction float64) *Body {
	return &Body{
		Pos:      cp.Vector{X: x, Y: y},
		Width:    w,
		Height:   h,
		Friction: friction,
	}
}

func (b *Body) Bounds() common.Rect {
	return common.NewRect(b.Pos.X, b.Pos.Y, b.Width, b.Height)
}

func (b *Body) Velocity() cp.Vector {
	return b.Vel
}

func (b *Body) Touching(r common.Rect) bool {
	return b.Bounds().Overlaps(r)
}

// IntegrateX moves the body horizontally and applies friction.
func (b *Body) IntegrateX() {
	b.stepX = b.Vel.X
	b.Pos.X += b.Vel.X
	b.Vel.X *= b.Friction
	if math.Abs(b.Vel.X) < velocityFloor {
		b.Vel.X = 0
	}
}

// IntegrateY moves the body vertically and applies gravity.
func (b *Body) IntegrateY() {
	b.stepY = b.Vel.Y
	b.Pos.Y += b.Vel.Y
	b.Vel.Y = math.Min(b.Vel.Y+Gravity, TerminalVelocity)
}

// BackOffX moves the body one pixel against its last horizontal motion.
func (b *Body) BackOffX() {
	b.Pos.X -= backOffDir(b.stepX, b.Vel.X)
}

// BackOffY moves the body one pixel against its last vertical motion.
func (b *Body) BackOffY() {
	b.Pos.Y -= backOffDir(b.stepY, b.Vel.Y)
}

func (b *Body) ResetVX() {
	b.Vel.X = 0
}

func (b *Body) ResetVY() {
	b.Vel.Y = 0
}

// ExitPortal places the body outside a portal with a new velocity.
func (b *Body) ExitPortal(pos, vel cp.Vector, _ Orientation) {
	b.Pos = pos
	b.Vel = vel
	b.stepX, b.stepY = 0, 0
}

// backOffDir prefers the direction the body actually moved; friction may
// already have zeroed the velocity that produced the penetration.
func backOffDir(step, vel float64) float64 {
	if step != 0 {
		return common.Sign(step)
	}
	return common.Sign(vel)
}

// BlockedFunc reports whether a body occupying r collides with the world.
type BlockedFunc func(r common.Rect) bool

// Resolve advances m by one tick: horizontal integration and back-off first,
// then vertical. The order matters for corner contacts.
func Resolve(m Movable, blocked BlockedFunc) {
	m.IntegrateX()
	if blocked(m.Bounds()) {
		BackOut(m.BackOffX, m.Bounds, blocked)
		m.ResetVX()
	}

	m.IntegrateY()
	if blocked(m.Bounds()) {
		BackOut(m.BackOffY, m.Bounds, blocked)
		m.ResetVY()
	}
}

// BackOut repeats step until bounds is no longer blocked and returns the
// number of steps taken.
func BackOut(step func(), bounds func() common.Rect, blocked BlockedFunc) int {
	n := 0
	for blocked(bounds()) && n < maxBackOffSteps {
		before := bounds()
		step()
		n++
		if bounds() == before {
			// no direction to back off in
			break
		}
	}
	return n
}
