package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
)

const (
	// ProjectileSpeed is the distance a projectile covers per tick. It is also
	// the number of sub-steps a tick is split into.
	ProjectileSpeed = 15
	// ProjectileSize is the width and height of a projectile.
	ProjectileSize = 14
)

// Projectile is an in-flight probe that becomes a portal on a valid hit.
type Projectile struct {
	Color Color
	Pos   cp.Vector
	Vel   cp.Vector
}

// Fire launches a projectile from from toward the target. It returns nil if
// the target is the origin, since there is no direction to fly in.
func Fire(color Color, from cp.Vector, targetX, targetY int) *Projectile {
	target := cp.Vector{X: float64(targetX), Y: float64(targetY)}
	dist := from.Distance(target)
	if dist == 0 {
		return nil
	}
	return &Projectile{
		Color: color,
		Pos:   from,
		Vel:   target.Sub(from).Mult(ProjectileSpeed / dist),
	}
}

func (p *Projectile) Bounds() common.Rect {
	return common.NewRect(p.Pos.X, p.Pos.Y, ProjectileSize, ProjectileSize)
}

// Outcome is what happened to a projectile during one tick.
type Outcome int

const (
	InFlight Outcome = iota
	Converted
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case InFlight:
		return "in_flight"
	case Converted:
		return "converted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// StepResult describes one tick of projectile travel. Obstacle is the first
// obstacle touched, if any; Portal is set when one was created; Reason holds
// the cancellation cause.
type StepResult struct {
	Outcome  Outcome
	Obstacle *Obstacle
	Portal   *Portal
	Reason   error
}

// Advance moves the projectile one tick in ProjectileSpeed sub-steps and
// stops at the first obstacle it touches. A successful hit places a portal in
// pair; any other hit cancels the shot. Either way the projectile is spent.
func (p *Projectile) Advance(obstacles []*Obstacle, pair *Pair) StepResult {
	step := p.Vel.Mult(1.0 / ProjectileSpeed)
	for i := 0; i < ProjectileSpeed; i++ {
		p.Pos = p.Pos.Add(step)
		hit, ok := p.firstContact(obstacles)
		if !ok {
			continue
		}
		p.Pos = hit.SnapToEdge(p.Pos)
		portal, err := p.convert(hit, pair)
		if err != nil {
			return StepResult{Outcome: Cancelled, Obstacle: hit, Reason: err}
		}
		pair.Place(portal)
		return StepResult{Outcome: Converted, Obstacle: hit, Portal: portal}
	}
	return StepResult{Outcome: InFlight}
}

// firstContact returns the first obstacle whose rect contains the
// projectile's position.
func (p *Projectile) firstContact(obstacles []*Obstacle) (*Obstacle, bool) {
	point := common.NewRect(p.Pos.X, p.Pos.Y, 0, 0)
	for _, o := range obstacles {
		if o.Touching(point) {
			return o, true
		}
	}
	return nil, false
}

// convert validates the hit and builds the portal, shifting the projectile
// along the surface when only one end of the portal fits.
func (p *Projectile) convert(host *Obstacle, pair *Pair) (*Portal, error) {
	if !host.PortalCapable() {
		return nil, ErrNotPortalCapable
	}
	if other := pair.Get(p.Color.Other()); other != nil && other.Touching(p.Bounds()) {
		return nil, ErrPortalOccupied
	}
	orientation, err := host.PortalOrientationAt(int(p.Pos.X), int(p.Pos.Y))
	if err != nil {
		return nil, err
	}
	fit := host.PortalRoom(orientation, p.Pos)
	if !fit.OK() {
		return nil, ErrNoPortalRoom
	}
	p.Pos = fit.Apply(p.Pos)
	return NewPortal(p.Color, p.Pos, orientation, host), nil
}
