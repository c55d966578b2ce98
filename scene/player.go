package scene

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
	"github.com/milk9111/portal2d/physics"
)

// Player is the controllable body. Movement intents persist between ticks
// until stopped.
type Player struct {
	*physics.Body

	moveSpeed   float64
	jumpSpeed   float64
	movingLeft  bool
	movingRight bool
	grounded    bool
}

func newPlayer(start Point, t PlayerTuning) *Player {
	return &Player{
		Body:      physics.NewBody(float64(start.X), float64(start.Y), t.Width, t.Height, t.Friction),
		moveSpeed: t.MoveSpeed,
		jumpSpeed: t.JumpSpeed,
		grounded:  true,
	}
}

func (p *Player) MovingLeft() bool  { return p.movingLeft }
func (p *Player) MovingRight() bool { return p.movingRight }
func (p *Player) Grounded() bool    { return p.grounded }

// processMovement turns held movement intents into velocity. Left wins when
// both are held.
func (p *Player) processMovement() {
	if p.movingLeft {
		p.Vel.X = -p.moveSpeed
	} else if p.movingRight {
		p.Vel.X = p.moveSpeed
	}
}

// jump only works from the ground.
func (p *Player) jump() bool {
	if !p.grounded {
		return false
	}
	p.Vel.Y = -p.jumpSpeed
	return true
}

// ExitPortal clears the held direction that would fight the exit velocity.
func (p *Player) ExitPortal(pos, vel cp.Vector, exit physics.Orientation) {
	p.Body.ExitPortal(pos, vel, exit)
	switch exit {
	case physics.FromLeft:
		p.movingRight = false
	case physics.FromRight:
		p.movingLeft = false
	}
}

// Center is where projectiles are fired from.
func (p *Player) Center() cp.Vector {
	return cp.Vector{X: p.Pos.X + common.Half(p.Width), Y: p.Pos.Y + common.Half(p.Height)}
}

// insideDoor requires the player to be strictly within the door.
func (p *Player) insideDoor(door common.Rect) bool {
	b := p.Bounds()
	return b.X > door.X && b.Right() < door.Right() &&
		b.Y > door.Y && b.Bottom() < door.Bottom()
}

// nearHelp uses the player's top-left corner and its width as radius.
func (p *Player) nearHelp(help Point) bool {
	return p.Pos.Distance(cp.Vector{X: float64(help.X), Y: float64(help.Y)}) < float64(p.Width)
}

// Cube is a carryable body.
type Cube struct {
	*physics.Body

	holdOffset float64
	held       bool
}

func newCube(at Point, t CubeTuning) *Cube {
	return &Cube{
		Body:       physics.NewBody(float64(at.X), float64(at.Y), t.Width, t.Height, t.Friction),
		holdOffset: t.HoldOffset,
	}
}

func (c *Cube) Held() bool {
	return c.held
}

// toggleHold picks the cube up, or drops it with the carrier's velocity.
func (c *Cube) toggleHold(carrierVel cp.Vector) bool {
	if !c.held {
		c.held = true
		return true
	}
	c.held = false
	c.Vel = carrierVel
	return false
}

func (c *Cube) carry(carrier *Player) {
	c.Pos = carrier.Pos.Add(cp.Vector{X: c.holdOffset, Y: c.holdOffset})
}
