package main

import (
	"image/color"

	"github.com/milk9111/portal2d/physics"
	"github.com/milk9111/portal2d/prefabs"
	"golang.org/x/image/colornames"
)

type palette struct {
	background  color.Color
	friendly    color.Color
	resistant   color.Color
	conditional color.Color
	portalA     color.Color
	portalB     color.Color
	door        color.Color
	button      color.Color
	buttonOn    color.Color
	text        color.Color
	player      color.Color
	cube        color.Color
}

func defaultPalette() palette {
	return palette{
		background:  colornames.Darkslategray,
		friendly:    colornames.Black,
		resistant:   colornames.White,
		conditional: colornames.Royalblue,
		portalA:     colornames.Dodgerblue,
		portalB:     colornames.Gold,
		door:        colornames.Saddlebrown,
		button:      colornames.Firebrick,
		buttonOn:    colornames.Limegreen,
		text:        colornames.White,
		player:      colornames.Whitesmoke,
		cube:        colornames.Darkgray,
	}
}

// loadPalette overlays the prefab colours on the defaults. A missing or
// broken prefab leaves the defaults in place.
func loadPalette() (palette, error) {
	p := defaultPalette()
	spec, err := prefabs.LoadPaletteSpec()
	if err != nil {
		return p, err
	}
	p.background = spec.Background.Or(p.background)
	p.friendly = spec.Friendly.Or(p.friendly)
	p.resistant = spec.Resistant.Or(p.resistant)
	p.conditional = spec.Conditional.Or(p.conditional)
	p.portalA = spec.PortalA.Or(p.portalA)
	p.portalB = spec.PortalB.Or(p.portalB)
	p.door = spec.Door.Or(p.door)
	p.button = spec.Button.Or(p.button)
	p.buttonOn = spec.ButtonOn.Or(p.buttonOn)
	p.text = spec.Text.Or(p.text)

	if player, err := prefabs.LoadPlayerSpec(); err == nil {
		p.player = player.Color.Or(p.player)
	}
	if cube, err := prefabs.LoadCubeSpec(); err == nil {
		p.cube = cube.Color.Or(p.cube)
	}
	return p, nil
}

func (p palette) obstacle(kind physics.ObstacleKind) color.Color {
	switch kind {
	case physics.Friendly:
		return p.friendly
	case physics.Conditional:
		return p.conditional
	}
	return p.resistant
}

func (p palette) portal(c physics.Color) color.Color {
	if c == physics.ColorB {
		return p.portalB
	}
	return p.portalA
}
