package scene

import "github.com/milk9111/portal2d/physics"

// DoorSize is the width and height of a level's exit door.
const DoorSize = 50

// Point is an integer position in scene pixels.
type Point struct {
	X int
	Y int
}

// ObstacleDef declares one obstacle of a layout.
type ObstacleDef struct {
	Name   string
	X, Y   float64
	Width  int
	Height int
	Kind   physics.ObstacleKind
}

// ButtonDef places a named button. Names are unique per button kind.
type ButtonDef struct {
	Name string
	X, Y int
}

// RuleDef wires a conditional obstacle to button state. When is an
// expression that must evaluate to a bool; it may call pressed("name") for
// floor buttons and active("name") for pedestal buttons. The obstacle is
// present while the expression is true.
type RuleDef struct {
	Obstacle string
	When     string
}

// Layout is everything the scene needs to know about a level.
type Layout struct {
	Name   string
	Width  int
	Height int

	Start Point
	Door  Point
	Help  Point
	Tip   string

	Obstacles       []ObstacleDef
	Cubes           []Point
	FloorButtons    []ButtonDef
	PedestalButtons []ButtonDef
	Rules           []RuleDef
}

// BodyTuning sizes a dynamic body.
type BodyTuning struct {
	Width    int
	Height   int
	Friction float64
}

// PlayerTuning adds movement constants to the player's body.
type PlayerTuning struct {
	BodyTuning
	MoveSpeed float64
	JumpSpeed float64
}

// CubeTuning adds the carry offset used while a cube is held.
type CubeTuning struct {
	BodyTuning
	HoldOffset float64
}

type Tuning struct {
	Player PlayerTuning
	Cube   CubeTuning
}

// DefaultTuning matches the shipped prefab files.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{
			BodyTuning: BodyTuning{Width: 30, Height: 30, Friction: 0.8},
			MoveSpeed:  4,
			JumpSpeed:  15,
		},
		Cube: CubeTuning{
			BodyTuning: BodyTuning{Width: 25, Height: 25, Friction: 0.92},
			HoldOffset: 2.5,
		},
	}
}
