package physics

import "errors"

var (
	// ErrNoOrientation is returned when a point on an obstacle does not have
	// exactly one open neighbouring pixel, which happens on corner pixels.
	ErrNoOrientation = errors.New("physics: portal orientation could not be determined")

	ErrNotPortalCapable = errors.New("physics: obstacle does not accept portals")
	ErrPortalOccupied   = errors.New("physics: opposite portal already occupies this spot")
	ErrNoPortalRoom     = errors.New("physics: not enough room for a portal")
	ErrOutOfBounds      = errors.New("physics: projectile left the scene")
)
