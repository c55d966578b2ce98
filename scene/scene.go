package scene

import (
	"errors"
	"fmt"

	"github.com/milk9111/portal2d/common"
	"github.com/milk9111/portal2d/physics"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidScene wraps every problem found while building a scene.
var ErrInvalidScene = errors.New("scene: invalid scene configuration")

// Outcome is the level state after a tick.
type Outcome int

const (
	None Outcome = iota
	BodyWonLevel
	BodyFellOutOfBounds
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case BodyWonLevel:
		return "won"
	case BodyFellOutOfBounds:
		return "fell_out_of_bounds"
	}
	return "unknown"
}

// Result is returned by every Tick.
type Result struct {
	Outcome Outcome
	Events  []Event
}

// BodyID addresses a dynamic body. The player is 0 and cubes follow in
// layout order.
type BodyID int

const PlayerID BodyID = 0

type Option func(*Scene)

// WithLogger sets the entry scene events are logged through.
func WithLogger(entry *log.Entry) Option {
	return func(s *Scene) {
		if entry != nil {
			s.log = entry
		}
	}
}

// Scene owns every entity of one level and advances them a tick at a time.
// It is not safe for concurrent use.
type Scene struct {
	name   string
	tip    string
	help   Point
	bounds common.Rect
	door   common.Rect

	obstacles   ObstacleSet
	conditional []*physics.Obstacle
	rules       []*rule

	player       *Player
	cubes        []*Cube
	floorButtons []*FloorButton
	pedestals    []*PedestalButton

	portals     physics.Pair
	projectiles [2]*physics.Projectile

	events EventQueue
	ticks  int
	log    *log.Entry
}

// Build validates layout and creates its scene.
func Build(layout Layout, tuning Tuning, opts ...Option) (*Scene, error) {
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("%w: bounds %dx%d", ErrInvalidScene, layout.Width, layout.Height)
	}

	s := &Scene{
		name:   layout.Name,
		tip:    layout.Tip,
		help:   layout.Help,
		bounds: common.NewRect(0, 0, layout.Width, layout.Height),
		door:   common.NewRect(float64(layout.Door.X), float64(layout.Door.Y), DoorSize, DoorSize),
		log:    log.WithField("level", layout.Name),
	}
	for _, opt := range opts {
		opt(s)
	}

	conditional := map[string]*physics.Obstacle{}
	for _, def := range layout.Obstacles {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: obstacle without a name", ErrInvalidScene)
		}
		if def.Width <= 0 || def.Height <= 0 {
			return nil, fmt.Errorf("%w: obstacle %q has size %dx%d", ErrInvalidScene, def.Name, def.Width, def.Height)
		}
		o := physics.NewObstacle(def.Name, def.X, def.Y, def.Width, def.Height, def.Kind)
		if !s.obstacles.Add(o) {
			return nil, fmt.Errorf("%w: duplicate obstacle %q", ErrInvalidScene, def.Name)
		}
		if o.Conditional() {
			conditional[o.Name] = o
			s.conditional = append(s.conditional, o)
		}
	}

	floor := map[string]*FloorButton{}
	for _, def := range layout.FloorButtons {
		if _, ok := floor[def.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate floor button %q", ErrInvalidScene, def.Name)
		}
		b := newFloorButton(def)
		floor[def.Name] = b
		s.floorButtons = append(s.floorButtons, b)
	}
	pedestal := map[string]*PedestalButton{}
	for _, def := range layout.PedestalButtons {
		if _, ok := pedestal[def.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate pedestal button %q", ErrInvalidScene, def.Name)
		}
		b := newPedestalButton(def)
		pedestal[def.Name] = b
		s.pedestals = append(s.pedestals, b)
	}

	ruled := map[string]bool{}
	for _, def := range layout.Rules {
		o, ok := s.obstacles.Get(def.Obstacle)
		if !ok {
			return nil, fmt.Errorf("%w: rule for unknown obstacle %q", ErrInvalidScene, def.Obstacle)
		}
		if _, ok := conditional[def.Obstacle]; !ok {
			return nil, fmt.Errorf("%w: rule for %s obstacle %q", ErrInvalidScene, o.Kind, def.Obstacle)
		}
		if ruled[def.Obstacle] {
			return nil, fmt.Errorf("%w: more than one rule for %q", ErrInvalidScene, def.Obstacle)
		}
		ruled[def.Obstacle] = true

		r, err := compileRule(def, o, floor, pedestal)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
		}
		s.rules = append(s.rules, r)
	}

	s.player = newPlayer(layout.Start, tuning.Player)
	for _, at := range layout.Cubes {
		s.cubes = append(s.cubes, newCube(at, tuning.Cube))
	}

	s.applyRules()
	s.events.Drain()
	return s, nil
}

func (s *Scene) Name() string {
	return s.name
}

func (s *Scene) Bounds() common.Rect {
	return s.bounds
}

func (s *Scene) Door() common.Rect {
	return s.door
}

func (s *Scene) Ticks() int {
	return s.ticks
}

func (s *Scene) Player() *Player {
	return s.player
}

// Tick advances the scene by one frame.
func (s *Scene) Tick(intents []Intent) Result {
	s.ticks++

	for _, in := range intents {
		s.apply(in)
	}

	s.refreshButtons()
	s.applyRules()

	s.player.processMovement()
	s.resolve(s.player.Body)
	s.player.grounded = s.grounded(s.player.Body)

	for _, c := range s.cubes {
		if c.held {
			c.carry(s.player)
			continue
		}
		s.resolve(c.Body)
	}

	s.teleport()
	s.advanceProjectiles()

	return Result{Outcome: s.outcome(), Events: s.events.Drain()}
}

func (s *Scene) apply(in Intent) {
	p := s.player
	switch in.Kind {
	case IntentMoveLeft:
		p.movingLeft = true
	case IntentStopLeft:
		p.movingLeft = false
	case IntentMoveRight:
		p.movingRight = true
	case IntentStopRight:
		p.movingRight = false
	case IntentJump:
		if p.jump() {
			s.events.Push(Event{Kind: EventJumped, Data: PlayerID})
		}
	case IntentFire:
		s.fire(in.Color, in.Target)
	case IntentInteract:
		s.interact()
	}
}

// fire is ignored while a projectile of the same colour is still flying.
func (s *Scene) fire(color physics.Color, target Point) {
	if s.projectiles[color] != nil {
		return
	}
	proj := physics.Fire(color, s.player.Center(), target.X, target.Y)
	if proj == nil {
		return
	}
	s.projectiles[color] = proj
	s.events.Push(Event{Kind: EventShotFired, Data: ShotEvent{Color: color, Target: target}})
}

// interact toggles every cube and pedestal the player touches.
func (s *Scene) interact() {
	bounds := s.player.Bounds()
	for i, c := range s.cubes {
		if !c.Touching(bounds) {
			continue
		}
		kind := EventCubeDropped
		if c.toggleHold(s.player.Vel) {
			kind = EventCubeGrabbed
		}
		s.events.Push(Event{Kind: kind, Data: BodyID(i + 1)})
	}
	for _, b := range s.pedestals {
		if !b.Rect.Overlaps(bounds) {
			continue
		}
		b.Toggle()
		s.events.Push(Event{Kind: EventPedestalToggled, Data: ToggleEvent{Name: b.Name, Present: b.active}})
	}
}

func (s *Scene) refreshButtons() {
	bodies := make([]common.Rect, 0, len(s.cubes)+1)
	bodies = append(bodies, s.player.Bounds())
	for _, c := range s.cubes {
		bodies = append(bodies, c.Bounds())
	}
	for _, b := range s.floorButtons {
		b.update(bodies)
	}
}

func (s *Scene) applyRules() {
	for _, r := range s.rules {
		present, err := r.evaluate()
		if err != nil {
			s.log.WithError(err).Warn("trigger rule failed")
			continue
		}
		var changed bool
		if present {
			changed = s.obstacles.Add(r.obstacle)
		} else {
			changed = s.obstacles.Remove(r.obstacle.Name)
		}
		if !changed {
			continue
		}
		s.log.WithFields(log.Fields{"obstacle": r.obstacle.Name, "present": present}).Debug("obstacle toggled")
		s.events.Push(Event{Kind: EventObstacleToggled, Data: ToggleEvent{Name: r.obstacle.Name, Present: present}})
	}
}

// blocked ignores obstacles while r is entering a portal of a complete pair.
func (s *Scene) blocked(r common.Rect) bool {
	return !s.portals.PassThrough(r) && s.obstacles.Touching(r)
}

func (s *Scene) resolve(b *physics.Body) {
	physics.Resolve(b, s.blocked)
}

func (s *Scene) grounded(b *physics.Body) bool {
	r := b.Bounds()
	return s.obstacles.Touching(r.Offset(0, 1)) && !s.portals.PassThrough(r)
}

func (s *Scene) teleport() {
	if in, out, ok := s.portals.Teleport(s.player); ok {
		s.logTeleport(PlayerID, in, out)
	}
	for i, c := range s.cubes {
		if c.held {
			continue
		}
		if in, out, ok := s.portals.Teleport(c); ok {
			s.logTeleport(BodyID(i+1), in, out)
		}
	}
}

func (s *Scene) logTeleport(id BodyID, in, out *physics.Portal) {
	s.log.WithFields(log.Fields{"body": id, "from": in.Color, "to": out.Color}).Debug("teleported")
	s.events.Push(Event{Kind: EventTeleported, Data: TeleportEvent{Body: id, From: in.Color, To: out.Color}})
}

func (s *Scene) advanceProjectiles() {
	for _, color := range [...]physics.Color{physics.ColorA, physics.ColorB} {
		proj := s.projectiles[color]
		if proj == nil {
			continue
		}
		res := proj.Advance(s.obstacles.All(), &s.portals)
		switch res.Outcome {
		case physics.InFlight:
			if s.bounds.ContainsPoint(proj.Pos.X, proj.Pos.Y) {
				continue
			}
			s.cancel(color, "", physics.ErrOutOfBounds)
		case physics.Converted:
			p := res.Portal
			s.log.WithFields(log.Fields{
				"color":       color,
				"orientation": p.Orientation,
				"x":           p.Pos.X,
				"y":           p.Pos.Y,
				"obstacle":    p.Host.Name,
			}).Debug("portal placed")
			s.events.Push(Event{Kind: EventPortalPlaced, Data: PortalEvent{
				Color:       color,
				Orientation: p.Orientation,
				Pos:         p.Pos,
				Obstacle:    p.Host.Name,
			}})
		case physics.Cancelled:
			s.cancel(color, res.Obstacle.Name, res.Reason)
		}
		s.projectiles[color] = nil
	}
}

func (s *Scene) cancel(color physics.Color, obstacle string, reason error) {
	s.log.WithFields(log.Fields{"color": color, "obstacle": obstacle}).WithError(reason).Debug("shot cancelled")
	s.events.Push(Event{Kind: EventShotCancelled, Data: CancelEvent{Color: color, Obstacle: obstacle, Reason: reason}})
}

func (s *Scene) outcome() Outcome {
	if s.player.insideDoor(s.door) {
		return BodyWonLevel
	}
	if s.player.Pos.Y > float64(s.bounds.Height) {
		return BodyFellOutOfBounds
	}
	return None
}

// compile-time check that the player keeps its own portal exit behaviour.
var _ physics.Traveller = (*Player)(nil)
