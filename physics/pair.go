package physics

import "github.com/milk9111/portal2d/common"

// Pair holds the two portal slots. An empty slot is a portal that is not on
// screen.
type Pair struct {
	slots [2]*Portal
}

func (p *Pair) Get(c Color) *Portal {
	if p == nil {
		return nil
	}
	return p.slots[c]
}

// Place installs portal in its colour's slot, replacing any previous one.
func (p *Pair) Place(portal *Portal) {
	if p == nil || portal == nil {
		return
	}
	p.slots[portal.Color] = portal
}

func (p *Pair) Clear(c Color) {
	if p == nil {
		return
	}
	p.slots[c] = nil
}

// Complete reports whether both portals are on screen.
func (p *Pair) Complete() bool {
	return p != nil && p.slots[ColorA] != nil && p.slots[ColorB] != nil
}

// Entering returns the portal r is entering and its partner. It only reports
// a match when the pair is complete; A is checked before B.
func (p *Pair) Entering(r common.Rect) (in, out *Portal, ok bool) {
	if !p.Complete() {
		return nil, nil, false
	}
	for _, c := range [...]Color{ColorA, ColorB} {
		if p.slots[c].Entering(r) {
			return p.slots[c], p.slots[c.Other()], true
		}
	}
	return nil, nil, false
}

// PassThrough reports whether r is mid-teleport and must ignore obstacles.
func (p *Pair) PassThrough(r common.Rect) bool {
	_, _, ok := p.Entering(r)
	return ok
}

// Teleport transports t if it is entering either portal of a complete pair.
func (p *Pair) Teleport(t Traveller) (in, out *Portal, ok bool) {
	in, out, ok = p.Entering(t.Bounds())
	if !ok {
		return nil, nil, false
	}
	Transport(t, in, out)
	return in, out, true
}
