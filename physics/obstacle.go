package physics

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/portal2d/common"
)

// ObstacleKind classifies how an obstacle treats portals.
type ObstacleKind int

const (
	// Resistant obstacles block bodies and refuse portals.
	Resistant ObstacleKind = iota
	// Friendly obstacles block bodies and accept portals.
	Friendly
	// Conditional obstacles refuse portals and exist only while their
	// trigger rule says so.
	Conditional
)

func (k ObstacleKind) String() string {
	switch k {
	case Resistant:
		return "resistant"
	case Friendly:
		return "friendly"
	case Conditional:
		return "conditional"
	}
	return fmt.Sprintf("ObstacleKind(%d)", int(k))
}

func ParseObstacleKind(s string) (ObstacleKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resistant", "portal_resistant":
		return Resistant, nil
	case "friendly", "portal_friendly":
		return Friendly, nil
	case "conditional", "toggleable":
		return Conditional, nil
	}
	return Resistant, fmt.Errorf("physics: unknown obstacle kind %q", s)
}

func (k ObstacleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ObstacleKind) UnmarshalText(text []byte) error {
	parsed, err := ParseObstacleKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Edge names one side of an obstacle.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// Obstacle is a named static rectangle in a scene.
type Obstacle struct {
	Name string
	Rect common.Rect
	Kind ObstacleKind
}

func NewObstacle(name string, x, y float64, w, h int, kind ObstacleKind) *Obstacle {
	return &Obstacle{Name: name, Rect: common.NewRect(x, y, w, h), Kind: kind}
}

func (o *Obstacle) Touching(r common.Rect) bool {
	return o.Rect.Overlaps(r)
}

func (o *Obstacle) PortalCapable() bool {
	return o.Kind == Friendly
}

func (o *Obstacle) Conditional() bool {
	return o.Kind == Conditional
}

// NearestEdge returns the edge closest to from, measured along the
// perpendicular to each edge. Ties go to top, bottom, left, right in order.
func (o *Obstacle) NearestEdge(from cp.Vector) Edge {
	r := o.Rect
	dists := [...]float64{
		EdgeTop:    from.Distance(cp.Vector{X: from.X, Y: r.Y}),
		EdgeBottom: from.Distance(cp.Vector{X: from.X, Y: r.Bottom()}),
		EdgeLeft:   from.Distance(cp.Vector{X: r.X, Y: from.Y}),
		EdgeRight:  from.Distance(cp.Vector{X: r.Right(), Y: from.Y}),
	}
	best := EdgeTop
	for e := EdgeBottom; e <= EdgeRight; e++ {
		if dists[e] < dists[best] {
			best = e
		}
	}
	return best
}

// SnapToEdge moves from onto the nearest edge, keeping the other coordinate.
func (o *Obstacle) SnapToEdge(from cp.Vector) cp.Vector {
	switch o.NearestEdge(from) {
	case EdgeTop:
		from.Y = o.Rect.Y
	case EdgeBottom:
		from.Y = o.Rect.Bottom()
	case EdgeLeft:
		from.X = o.Rect.X
	case EdgeRight:
		from.X = o.Rect.Right()
	}
	return from
}

// PortalOrientationAt probes the four pixels around (px, py). Exactly three
// must lie inside the obstacle; the open one is the direction the portal faces.
func (o *Obstacle) PortalOrientationAt(px, py int) (Orientation, error) {
	x, y := float64(px), float64(py)
	blockedBelow := o.Rect.ContainsPoint(x, y+1)
	blockedAbove := o.Rect.ContainsPoint(x, y-1)
	blockedRight := o.Rect.ContainsPoint(x+1, y)
	blockedLeft := o.Rect.ContainsPoint(x-1, y)

	switch {
	case blockedRight && blockedBelow && blockedAbove && !blockedLeft:
		return FromLeft, nil
	case blockedLeft && blockedBelow && blockedAbove && !blockedRight:
		return FromRight, nil
	case blockedLeft && blockedRight && blockedAbove && !blockedBelow:
		return FromBottom, nil
	case blockedLeft && blockedRight && blockedBelow && !blockedAbove:
		return FromTop, nil
	}
	return 0, fmt.Errorf("%w: %q at (%d,%d)", ErrNoOrientation, o.Name, px, py)
}

// FitKind describes whether a portal fits on an obstacle.
type FitKind int

const (
	FitNone FitKind = iota
	FitBoth
	FitShiftX
	FitShiftY
)

// Fit is the answer to a portal room query. For the shift kinds, To is the
// coordinate the portal origin must move to.
type Fit struct {
	Kind FitKind
	To   float64
}

func (f Fit) OK() bool {
	return f.Kind != FitNone
}

// Apply moves origin according to the fit.
func (f Fit) Apply(origin cp.Vector) cp.Vector {
	switch f.Kind {
	case FitShiftX:
		origin.X = f.To
	case FitShiftY:
		origin.Y = f.To
	}
	return origin
}

// PortalRoom checks that both ends of a portal centred on origin lie on the
// obstacle. When only one end fits, the result shifts the portal so it sits
// flush against the side that ran out of room.
func (o *Obstacle) PortalRoom(orientation Orientation, origin cp.Vector) Fit {
	r := o.Rect
	half := float64(PortalLength / 2)

	if orientation.Horizontal() {
		low := r.ContainsPoint(origin.X-half, origin.Y)
		high := r.ContainsPoint(origin.X+half, origin.Y)
		switch {
		case low && high:
			return Fit{Kind: FitBoth}
		case low:
			return Fit{Kind: FitShiftX, To: r.Right() - half}
		case high:
			return Fit{Kind: FitShiftX, To: r.X + half}
		}
		return Fit{Kind: FitNone}
	}

	low := r.ContainsPoint(origin.X, origin.Y-half)
	high := r.ContainsPoint(origin.X, origin.Y+half)
	switch {
	case low && high:
		return Fit{Kind: FitBoth}
	case low:
		return Fit{Kind: FitShiftY, To: r.Bottom() - half}
	case high:
		return Fit{Kind: FitShiftY, To: r.Y + half}
	}
	return Fit{Kind: FitNone}
}
