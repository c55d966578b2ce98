package scene

import "github.com/milk9111/portal2d/physics"

// IntentKind is a discrete command from the input layer.
type IntentKind int

const (
	IntentMoveLeft IntentKind = iota
	IntentStopLeft
	IntentMoveRight
	IntentStopRight
	IntentJump
	IntentFire
	IntentInteract
)

func (k IntentKind) String() string {
	switch k {
	case IntentMoveLeft:
		return "move_left"
	case IntentStopLeft:
		return "stop_left"
	case IntentMoveRight:
		return "move_right"
	case IntentStopRight:
		return "stop_right"
	case IntentJump:
		return "jump"
	case IntentFire:
		return "fire"
	case IntentInteract:
		return "interact"
	}
	return "unknown"
}

// Intent is one input command. Color and Target are only read for
// IntentFire.
type Intent struct {
	Kind   IntentKind
	Color  physics.Color
	Target Point
}

func MoveLeft() Intent  { return Intent{Kind: IntentMoveLeft} }
func StopLeft() Intent  { return Intent{Kind: IntentStopLeft} }
func MoveRight() Intent { return Intent{Kind: IntentMoveRight} }
func StopRight() Intent { return Intent{Kind: IntentStopRight} }
func Jump() Intent      { return Intent{Kind: IntentJump} }
func Interact() Intent  { return Intent{Kind: IntentInteract} }

func Fire(color physics.Color, x, y int) Intent {
	return Intent{Kind: IntentFire, Color: color, Target: Point{X: x, Y: y}}
}
