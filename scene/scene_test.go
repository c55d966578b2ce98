package scene

import (
	"errors"
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
	"github.com/milk9111/portal2d/physics"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseLayout() Layout {
	return Layout{
		Name:   "test",
		Width:  1000,
		Height: 600,
		Start:  Point{X: 150, Y: 539},
		Door:   Point{X: 900, Y: 100},
		Obstacles: []ObstacleDef{
			{Name: "floor", X: 0, Y: 570, Width: 1000, Height: 30, Kind: physics.Friendly},
			{Name: "ceiling", X: 0, Y: 0, Width: 1000, Height: 30, Kind: physics.Friendly},
		},
	}
}

func mustBuild(t *testing.T, layout Layout) *Scene {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s, err := Build(layout, DefaultTuning(), WithLogger(log.NewEntry(logger)))
	require.NoError(t, err)
	return s
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestRestingBodyStaysPut(t *testing.T) {
	s := mustBuild(t, baseLayout())

	for i := 0; i < 60; i++ {
		res := s.Tick(nil)
		require.Equal(t, None, res.Outcome)
	}

	p, ok := s.BodyAt(PlayerID)
	require.True(t, ok)
	assert.Equal(t, 150.0, p.Pos.X)
	assert.Equal(t, 539.0, p.Pos.Y)
	assert.Equal(t, 0.0, p.Vel.Y)
	assert.True(t, p.Grounded)
}

func TestBuildErrors(t *testing.T) {
	gate := ObstacleDef{Name: "gate", X: 500, Y: 400, Width: 20, Height: 170, Kind: physics.Conditional}
	button := ButtonDef{Name: "fb", X: 200, Y: 560}

	cases := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"zero_bounds", func(l *Layout) { l.Width = 0 }},
		{"duplicate_obstacle", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, ObstacleDef{Name: "floor", Width: 1, Height: 1})
		}},
		{"unnamed_obstacle", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, ObstacleDef{Width: 1, Height: 1})
		}},
		{"empty_obstacle", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, ObstacleDef{Name: "flat", Width: 10})
		}},
		{"duplicate_button", func(l *Layout) {
			l.FloorButtons = []ButtonDef{button, button}
		}},
		{"rule_unknown_obstacle", func(l *Layout) {
			l.FloorButtons = []ButtonDef{button}
			l.Rules = []RuleDef{{Obstacle: "nope", When: `pressed("fb")`}}
		}},
		{"rule_not_conditional", func(l *Layout) {
			l.FloorButtons = []ButtonDef{button}
			l.Rules = []RuleDef{{Obstacle: "floor", When: `pressed("fb")`}}
		}},
		{"rule_unknown_button", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, gate)
			l.Rules = []RuleDef{{Obstacle: "gate", When: `true || active("missing")`}}
		}},
		{"rule_syntax", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, gate)
			l.FloorButtons = []ButtonDef{button}
			l.Rules = []RuleDef{{Obstacle: "gate", When: `pressed("fb") &&`}}
		}},
		{"rule_not_bool", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, gate)
			l.Rules = []RuleDef{{Obstacle: "gate", When: `1 + 2`}}
		}},
		{"rule_twice", func(l *Layout) {
			l.Obstacles = append(l.Obstacles, gate)
			l.Rules = []RuleDef{{Obstacle: "gate", When: `true`}, {Obstacle: "gate", When: `false`}}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layout := baseLayout()
			c.mutate(&layout)
			_, err := Build(layout, DefaultTuning())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene), err.Error())
		})
	}
}

func TestRuleTogglesConditionalObstacle(t *testing.T) {
	layout := baseLayout()
	layout.Obstacles = append(layout.Obstacles,
		ObstacleDef{Name: "gate", X: 500, Y: 400, Width: 20, Height: 170, Kind: physics.Conditional})
	layout.FloorButtons = []ButtonDef{{Name: "fb", X: 200, Y: 560}}
	layout.Rules = []RuleDef{{Obstacle: "gate", When: `!pressed("fb")`}}
	s := mustBuild(t, layout)

	require.True(t, s.ObstaclePresent("gate"))

	s.player.Pos.X = 210
	res := s.Tick(nil)
	assert.False(t, s.ObstaclePresent("gate"))
	require.Contains(t, kinds(res.Events), EventObstacleToggled)
	assert.True(t, s.FloorButtons()[0].On)

	s.player.Pos.X = 150
	res = s.Tick(nil)
	assert.True(t, s.ObstaclePresent("gate"))
	assert.Contains(t, res.Events, Event{Kind: EventObstacleToggled, Data: ToggleEvent{Name: "gate", Present: true}})

	res = s.Tick(nil)
	assert.NotContains(t, kinds(res.Events), EventObstacleToggled)
}

func TestPedestalRule(t *testing.T) {
	layout := baseLayout()
	layout.Obstacles = append(layout.Obstacles,
		ObstacleDef{Name: "wall", X: 500, Y: 400, Width: 20, Height: 170, Kind: physics.Conditional})
	layout.PedestalButtons = []ButtonDef{{Name: "ped", X: 170, Y: 540}}
	layout.Rules = []RuleDef{{Obstacle: "wall", When: `active("ped")`}}
	s := mustBuild(t, layout)

	require.False(t, s.ObstaclePresent("wall"))

	res := s.Tick([]Intent{Interact()})
	assert.True(t, s.PedestalButtons()[0].On)
	assert.True(t, s.ObstaclePresent("wall"))
	assert.Equal(t, []EventKind{EventPedestalToggled, EventObstacleToggled}, kinds(res.Events))
}

func TestTeleportThroughFloor(t *testing.T) {
	s := mustBuild(t, baseLayout())
	floor, _ := s.obstacles.Get("floor")
	ceiling, _ := s.obstacles.Get("ceiling")
	s.portals.Place(physics.NewPortal(physics.ColorA, cp.Vector{X: 300, Y: 570}, physics.FromTop, floor))
	s.portals.Place(physics.NewPortal(physics.ColorB, cp.Vector{X: 700, Y: 30}, physics.FromBottom, ceiling))
	s.player.Pos = cp.Vector{X: 285, Y: 539}

	res := s.Tick(nil)

	p, _ := s.BodyAt(PlayerID)
	assert.Equal(t, cp.Vector{X: 685, Y: 40}, p.Pos)
	assert.Equal(t, cp.Vector{X: 0, Y: 1}, p.Vel)
	assert.Contains(t, res.Events, Event{Kind: EventTeleported, Data: TeleportEvent{
		Body: PlayerID,
		From: physics.ColorA,
		To:   physics.ColorB,
	}})
}

func TestIncompletePairDoesNotTeleport(t *testing.T) {
	s := mustBuild(t, baseLayout())
	floor, _ := s.obstacles.Get("floor")
	s.portals.Place(physics.NewPortal(physics.ColorA, cp.Vector{X: 300, Y: 570}, physics.FromTop, floor))
	s.player.Pos = cp.Vector{X: 285, Y: 539}

	for i := 0; i < 10; i++ {
		s.Tick(nil)
	}

	p, _ := s.BodyAt(PlayerID)
	assert.Equal(t, cp.Vector{X: 285, Y: 539}, p.Pos)
	assert.True(t, p.Grounded)
}

func TestExitClearsOpposingIntent(t *testing.T) {
	s := mustBuild(t, baseLayout())
	s.player.movingLeft = true
	s.player.movingRight = true

	s.player.ExitPortal(cp.Vector{X: 10, Y: 10}, cp.Vector{X: -5}, physics.FromLeft)
	assert.False(t, s.player.MovingRight())
	assert.True(t, s.player.MovingLeft())

	s.player.movingRight = true
	s.player.ExitPortal(cp.Vector{X: 10, Y: 10}, cp.Vector{X: 5}, physics.FromRight)
	assert.False(t, s.player.MovingLeft())
	assert.True(t, s.player.MovingRight())
}

func TestMovement(t *testing.T) {
	s := mustBuild(t, baseLayout())

	s.Tick([]Intent{MoveRight()})
	p, _ := s.BodyAt(PlayerID)
	assert.Equal(t, 154.0, p.Pos.X)
	assert.InDelta(t, 3.2, p.Vel.X, 1e-9)

	s.Tick([]Intent{MoveLeft()})
	p, _ = s.BodyAt(PlayerID)
	assert.Equal(t, 150.0, p.Pos.X)

	s.Tick([]Intent{StopLeft(), StopRight()})
	p, _ = s.BodyAt(PlayerID)
	assert.InDelta(t, 150-3.2, p.Pos.X, 1e-9)
}

func TestJumpOnlyFromGround(t *testing.T) {
	s := mustBuild(t, baseLayout())

	res := s.Tick([]Intent{Jump()})
	assert.Contains(t, kinds(res.Events), EventJumped)
	p, _ := s.BodyAt(PlayerID)
	assert.Equal(t, 524.0, p.Pos.Y)
	assert.Equal(t, -14.0, p.Vel.Y)
	assert.False(t, p.Grounded)

	res = s.Tick([]Intent{Jump()})
	assert.NotContains(t, kinds(res.Events), EventJumped)
	p, _ = s.BodyAt(PlayerID)
	assert.Equal(t, 510.0, p.Pos.Y)
}

func TestCubePickUpAndDrop(t *testing.T) {
	layout := baseLayout()
	layout.Cubes = []Point{{X: 170, Y: 544}}
	s := mustBuild(t, layout)

	res := s.Tick([]Intent{Interact()})
	assert.Contains(t, res.Events, Event{Kind: EventCubeGrabbed, Data: BodyID(1)})
	c, ok := s.BodyAt(1)
	require.True(t, ok)
	assert.True(t, c.Held)
	assert.Equal(t, cp.Vector{X: 152.5, Y: 541.5}, c.Pos)

	s.Tick([]Intent{MoveRight()})
	p, _ := s.BodyAt(PlayerID)
	c, _ = s.BodyAt(1)
	assert.Equal(t, p.Pos.Add(cp.Vector{X: 2.5, Y: 2.5}), c.Pos)

	res = s.Tick([]Intent{Interact()})
	assert.Contains(t, res.Events, Event{Kind: EventCubeDropped, Data: BodyID(1)})
	c, _ = s.BodyAt(1)
	assert.False(t, c.Held)
	assert.NotZero(t, c.Vel.X)

	_, ok = s.BodyAt(2)
	assert.False(t, ok)
	assert.Len(t, s.Bodies(), 2)
}

func TestCubePressesFloorButton(t *testing.T) {
	layout := baseLayout()
	layout.Cubes = []Point{{X: 600, Y: 544}}
	layout.FloorButtons = []ButtonDef{{Name: "fb", X: 590, Y: 560}}
	s := mustBuild(t, layout)

	s.Tick(nil)
	assert.True(t, s.FloorButtons()[0].On)
}

func TestWinAndFall(t *testing.T) {
	t.Run("won", func(t *testing.T) {
		layout := baseLayout()
		layout.Door = Point{X: 600, Y: 520}
		layout.Start = Point{X: 610, Y: 530}
		s := mustBuild(t, layout)
		assert.Equal(t, BodyWonLevel, s.Tick(nil).Outcome)
	})

	t.Run("edge_of_door_is_not_inside", func(t *testing.T) {
		layout := baseLayout()
		layout.Door = Point{X: 600, Y: 520}
		layout.Start = Point{X: 600, Y: 530}
		s := mustBuild(t, layout)
		assert.Equal(t, None, s.Tick(nil).Outcome)
	})

	t.Run("fell", func(t *testing.T) {
		layout := baseLayout()
		layout.Obstacles = nil
		layout.Start = Point{X: 100, Y: 580}
		s := mustBuild(t, layout)

		outcome := None
		for i := 0; i < 10 && outcome == None; i++ {
			outcome = s.Tick(nil).Outcome
		}
		assert.Equal(t, BodyFellOutOfBounds, outcome)
		assert.Equal(t, 7, s.Ticks())
	})
}

func TestFirePlacesPortal(t *testing.T) {
	s := mustBuild(t, baseLayout())

	require.False(t, s.PortalState(physics.ColorA).OnScreen)
	absent := s.PortalState(physics.ColorB)
	assert.Equal(t, cp.Vector{X: -1, Y: -1}, absent.Pos)
	assert.Zero(t, absent.Width)
	assert.Zero(t, absent.Height)

	res := s.Tick([]Intent{Fire(physics.ColorA, 165, 854)})
	assert.Equal(t, []EventKind{EventShotFired}, kinds(res.Events))
	require.Len(t, s.Projectiles(), 1)

	// a second shot of the same colour is ignored while the first flies
	res = s.Tick([]Intent{Fire(physics.ColorA, 0, 0)})
	require.Equal(t, []EventKind{EventPortalPlaced}, kinds(res.Events))
	placed, ok := res.Events[0].Data.(PortalEvent)
	require.True(t, ok)
	assert.Equal(t, "floor", placed.Obstacle)
	assert.Empty(t, s.Projectiles())

	a := s.PortalState(physics.ColorA)
	require.True(t, a.OnScreen)
	assert.Equal(t, physics.FromTop, a.Orientation)
	assert.InDelta(t, 165, a.Pos.X, 1e-9)
	assert.Equal(t, 570.0, a.Pos.Y)
	assert.Equal(t, 80, a.Width)
	assert.Equal(t, 10, a.Height)
}

func TestShotCancelledOnResistant(t *testing.T) {
	layout := baseLayout()
	layout.Obstacles[0].Kind = physics.Resistant
	s := mustBuild(t, layout)

	var cancel *CancelEvent
	for i := 0; i < 5 && cancel == nil; i++ {
		intents := []Intent{}
		if i == 0 {
			intents = append(intents, Fire(physics.ColorB, 165, 854))
		}
		for _, e := range s.Tick(intents).Events {
			if ce, ok := e.Data.(CancelEvent); ok {
				cancel = &ce
			}
		}
	}
	require.NotNil(t, cancel)
	assert.Equal(t, "floor", cancel.Obstacle)
	assert.ErrorIs(t, cancel.Reason, physics.ErrNotPortalCapable)
	assert.False(t, s.PortalState(physics.ColorB).OnScreen)
}

func TestShotLeavingSceneIsCancelled(t *testing.T) {
	layout := baseLayout()
	layout.Obstacles = layout.Obstacles[:1]
	s := mustBuild(t, layout)

	var reasons []error
	for i := 0; i < 100; i++ {
		intents := []Intent{}
		if i == 0 {
			intents = append(intents, Fire(physics.ColorA, 165, 0))
		}
		for _, e := range s.Tick(intents).Events {
			if ce, ok := e.Data.(CancelEvent); ok {
				reasons = append(reasons, ce.Reason)
			}
		}
	}
	require.Len(t, reasons, 1)
	assert.ErrorIs(t, reasons[0], physics.ErrOutOfBounds)
	assert.Empty(t, s.Projectiles())
}

func TestHelpTip(t *testing.T) {
	layout := baseLayout()
	layout.Help = Point{X: 160, Y: 540}
	layout.Tip = "press W to jump"
	s := mustBuild(t, layout)

	_, tip, visible := s.Help()
	assert.True(t, visible)
	assert.Equal(t, "press W to jump", tip)

	s.player.Pos.X = 400
	_, _, visible = s.Help()
	assert.False(t, visible)
}

func placeFloorCeilingPair(t *testing.T, s *Scene, floorX float64) {
	t.Helper()
	floor, ok := s.obstacles.Get("floor")
	require.True(t, ok)
	ceiling, ok := s.obstacles.Get("ceiling")
	require.True(t, ok)
	s.portals.Place(physics.NewPortal(physics.ColorA, cp.Vector{X: floorX, Y: 570}, physics.FromTop, floor))
	s.portals.Place(physics.NewPortal(physics.ColorB, cp.Vector{X: 700, Y: 30}, physics.FromBottom, ceiling))
}

func TestFallingBodyKeepsSpeedThroughPortal(t *testing.T) {
	layout := baseLayout()
	layout.Start = Point{X: 285, Y: 300}
	s := mustBuild(t, layout)
	placeFloorCeilingPair(t, s, 300)

	var before BodySnapshot
	for i := 0; i < 40; i++ {
		before, _ = s.BodyAt(PlayerID)
		res := s.Tick(nil)
		if !slices.Contains(kinds(res.Events), EventTeleported) {
			continue
		}
		after, _ := s.BodyAt(PlayerID)
		assert.Equal(t, cp.Vector{X: 285, Y: 531}, before.Pos)
		assert.Equal(t, cp.Vector{X: 0, Y: 22}, before.Vel)
		assert.Equal(t, cp.Vector{X: 685, Y: 40}, after.Pos)
		assert.Equal(t, cp.Vector{X: 0, Y: 23}, after.Vel)
		return
	}
	t.Fatal("body never went through the portal")
}

func TestNotGroundedOnCompletePair(t *testing.T) {
	s := mustBuild(t, baseLayout())
	placeFloorCeilingPair(t, s, 300)
	s.player.Pos = cp.Vector{X: 285, Y: 539}

	s.Tick(nil)

	p, _ := s.BodyAt(PlayerID)
	assert.False(t, p.Grounded)
}

func TestHeldCubeIsNotTeleported(t *testing.T) {
	layout := baseLayout()
	layout.Cubes = []Point{{X: 170, Y: 544}}
	s := mustBuild(t, layout)
	// mouth spans x 151..231: the carried cube is inside it, the player is not
	placeFloorCeilingPair(t, s, 191)

	res := s.Tick([]Intent{Interact()})
	require.Contains(t, kinds(res.Events), EventCubeGrabbed)

	for i := 0; i < 4; i++ {
		res = s.Tick(nil)
		assert.NotContains(t, kinds(res.Events), EventTeleported)
	}

	c, _ := s.BodyAt(1)
	assert.True(t, c.Held)
	assert.Equal(t, cp.Vector{X: 152.5, Y: 541.5}, c.Pos)
	assert.True(t, s.portals.Get(physics.ColorA).Entering(common.NewRect(c.Pos.X, c.Pos.Y, c.Width, c.Height)))
}
