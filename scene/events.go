package scene

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/physics"
)

// EventKind identifies what happened during a tick.
type EventKind string

const (
	EventShotFired       EventKind = "shot_fired"
	EventPortalPlaced    EventKind = "portal_placed"
	EventShotCancelled   EventKind = "shot_cancelled"
	EventTeleported      EventKind = "teleported"
	EventObstacleToggled EventKind = "obstacle_toggled"
	EventJumped          EventKind = "jumped"
	EventCubeGrabbed     EventKind = "cube_grabbed"
	EventCubeDropped     EventKind = "cube_dropped"
	EventPedestalToggled EventKind = "pedestal_toggled"
)

// Event is a tick event. Data holds one of the *Event payload structs below,
// or a BodyID for body-only events.
type Event struct {
	Kind EventKind
	Data any
}

type ShotEvent struct {
	Color  physics.Color
	Target Point
}

type PortalEvent struct {
	Color       physics.Color
	Orientation physics.Orientation
	Pos         cp.Vector
	Obstacle    string
}

type CancelEvent struct {
	Color    physics.Color
	Obstacle string
	Reason   error
}

type TeleportEvent struct {
	Body BodyID
	From physics.Color
	To   physics.Color
}

type ToggleEvent struct {
	Name    string
	Present bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
