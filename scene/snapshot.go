package scene

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
	"github.com/milk9111/portal2d/physics"
)

// BodySnapshot is a read-only copy of a dynamic body.
type BodySnapshot struct {
	ID       BodyID
	Pos      cp.Vector
	Width    int
	Height   int
	Vel      cp.Vector
	Grounded bool
	Held     bool
}

// PortalSnapshot reports a portal slot. An absent portal reads as position
// (-1,-1) with a zero size.
type PortalSnapshot struct {
	Color       physics.Color
	OnScreen    bool
	Pos         cp.Vector
	Width       int
	Height      int
	Orientation physics.Orientation
}

type ProjectileSnapshot struct {
	Color physics.Color
	Pos   cp.Vector
	Size  int
}

type ObstacleSnapshot struct {
	Name string
	Rect common.Rect
	Kind physics.ObstacleKind
}

type ButtonSnapshot struct {
	Name string
	Rect common.Rect
	On   bool
}

func snapshotBody(id BodyID, b *physics.Body, grounded, held bool) BodySnapshot {
	return BodySnapshot{
		ID:       id,
		Pos:      b.Pos,
		Width:    b.Width,
		Height:   b.Height,
		Vel:      b.Vel,
		Grounded: grounded,
		Held:     held,
	}
}

// BodyAt returns the player for PlayerID and cube n for BodyID(n).
func (s *Scene) BodyAt(id BodyID) (BodySnapshot, bool) {
	if id == PlayerID {
		return snapshotBody(id, s.player.Body, s.player.grounded, false), true
	}
	i := int(id) - 1
	if i < 0 || i >= len(s.cubes) {
		return BodySnapshot{}, false
	}
	c := s.cubes[i]
	return snapshotBody(id, c.Body, s.grounded(c.Body), c.held), true
}

// Bodies returns the player followed by every cube.
func (s *Scene) Bodies() []BodySnapshot {
	out := make([]BodySnapshot, 0, len(s.cubes)+1)
	for id := PlayerID; int(id) <= len(s.cubes); id++ {
		b, _ := s.BodyAt(id)
		out = append(out, b)
	}
	return out
}

func (s *Scene) PortalState(color physics.Color) PortalSnapshot {
	p := s.portals.Get(color)
	if p == nil {
		return PortalSnapshot{
			Color:       color,
			Pos:         cp.Vector{X: -1, Y: -1},
			Orientation: physics.FromBottom,
		}
	}
	return PortalSnapshot{
		Color:       color,
		OnScreen:    true,
		Pos:         p.Pos,
		Width:       p.Width,
		Height:      p.Height,
		Orientation: p.Orientation,
	}
}

func (s *Scene) Projectiles() []ProjectileSnapshot {
	var out []ProjectileSnapshot
	for _, p := range s.projectiles {
		if p == nil {
			continue
		}
		out = append(out, ProjectileSnapshot{Color: p.Color, Pos: p.Pos, Size: physics.ProjectileSize})
	}
	return out
}

// Obstacles returns the obstacles currently present, conditional ones
// included only while switched on.
func (s *Scene) Obstacles() []ObstacleSnapshot {
	out := make([]ObstacleSnapshot, 0, s.obstacles.Len())
	for _, o := range s.obstacles.All() {
		out = append(out, ObstacleSnapshot{Name: o.Name, Rect: o.Rect, Kind: o.Kind})
	}
	return out
}

func (s *Scene) ObstaclePresent(name string) bool {
	return s.obstacles.Contains(name)
}

func (s *Scene) FloorButtons() []ButtonSnapshot {
	out := make([]ButtonSnapshot, 0, len(s.floorButtons))
	for _, b := range s.floorButtons {
		out = append(out, ButtonSnapshot{Name: b.Name, Rect: b.Rect, On: b.pressed})
	}
	return out
}

func (s *Scene) PedestalButtons() []ButtonSnapshot {
	out := make([]ButtonSnapshot, 0, len(s.pedestals))
	for _, b := range s.pedestals {
		out = append(out, ButtonSnapshot{Name: b.Name, Rect: b.Rect, On: b.active})
	}
	return out
}

// Help returns the help node position, its tip, and whether the player is
// close enough to read it.
func (s *Scene) Help() (Point, string, bool) {
	return s.help, s.tip, s.tip != "" && s.player.nearHelp(s.help)
}
