package scene

import "github.com/milk9111/portal2d/common"

const (
	FloorButtonWidth     = 50
	FloorButtonHeight    = 10
	PedestalButtonWidth  = 10
	PedestalButtonHeight = 30
)

// FloorButton is held down by the player or any cube resting on it.
type FloorButton struct {
	Name    string
	Rect    common.Rect
	pressed bool
}

func newFloorButton(def ButtonDef) *FloorButton {
	return &FloorButton{
		Name: def.Name,
		Rect: common.NewRect(float64(def.X), float64(def.Y), FloorButtonWidth, FloorButtonHeight),
	}
}

func (b *FloorButton) Pressed() bool {
	return b.pressed
}

func (b *FloorButton) update(bodies []common.Rect) {
	b.pressed = false
	for _, r := range bodies {
		if b.Rect.Overlaps(r) {
			b.pressed = true
			return
		}
	}
}

// PedestalButton is toggled by the player's interact command.
type PedestalButton struct {
	Name   string
	Rect   common.Rect
	active bool
}

func newPedestalButton(def ButtonDef) *PedestalButton {
	return &PedestalButton{
		Name: def.Name,
		Rect: common.NewRect(float64(def.X), float64(def.Y), PedestalButtonWidth, PedestalButtonHeight),
	}
}

func (b *PedestalButton) Active() bool {
	return b.active
}

func (b *PedestalButton) Toggle() {
	b.active = !b.active
}
