package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
)

// Collidable is anything that can answer a touch query for a rectangle.
type Collidable interface {
	Touching(r common.Rect) bool
}

// Movable is a body that is integrated one axis at a time and backed out of
// obstacles a pixel at a time.
type Movable interface {
	Bounds() common.Rect
	IntegrateX()
	IntegrateY()
	BackOffX()
	BackOffY()
	ResetVX()
	ResetVY()
}

// Traveller is a body that can pass through a portal pair.
type Traveller interface {
	Bounds() common.Rect
	Velocity() cp.Vector
	ExitPortal(pos, vel cp.Vector, exit Orientation)
}

// PortalHost is an obstacle surface that portals can be mounted on.
type PortalHost interface {
	PortalCapable() bool
	PortalOrientationAt(px, py int) (Orientation, error)
	PortalRoom(orientation Orientation, origin cp.Vector) Fit
}

var (
	_ Collidable = (*Obstacle)(nil)
	_ Collidable = (*Portal)(nil)
	_ PortalHost = (*Obstacle)(nil)
	_ Movable    = (*Body)(nil)
	_ Traveller  = (*Body)(nil)
)
