package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/portal2d/physics"
	"github.com/milk9111/portal2d/scene"
)

// inputState is one frame of raw edges read from the keyboard and mouse.
type inputState struct {
	leftPressed   bool
	leftReleased  bool
	rightPressed  bool
	rightReleased bool
	jump          bool
	interact      bool
	fireA         bool
	fireB         bool
	cursorX       int
	cursorY       int
	restart       bool
}

func readInput() inputState {
	x, y := ebiten.CursorPosition()
	return inputState{
		leftPressed:   inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft),
		leftReleased:  inpututil.IsKeyJustReleased(ebiten.KeyA) || inpututil.IsKeyJustReleased(ebiten.KeyArrowLeft),
		rightPressed:  inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight),
		rightReleased: inpututil.IsKeyJustReleased(ebiten.KeyD) || inpututil.IsKeyJustReleased(ebiten.KeyArrowRight),
		jump: inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace),
		interact: inpututil.IsKeyJustPressed(ebiten.KeyE) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle),
		fireA:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		fireB:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		cursorX: x,
		cursorY: y,
		restart: inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
	}
}

// intents turns input edges into scene commands. Releases come after
// presses so a tap within one frame still stops the body.
func (s inputState) intents() []scene.Intent {
	var out []scene.Intent
	if s.leftPressed {
		out = append(out, scene.MoveLeft())
	}
	if s.rightPressed {
		out = append(out, scene.MoveRight())
	}
	if s.leftReleased {
		out = append(out, scene.StopLeft())
	}
	if s.rightReleased {
		out = append(out, scene.StopRight())
	}
	if s.jump {
		out = append(out, scene.Jump())
	}
	if s.interact {
		out = append(out, scene.Interact())
	}
	if s.fireA {
		out = append(out, scene.Fire(physics.ColorA, s.cursorX, s.cursorY))
	}
	if s.fireB {
		out = append(out, scene.Fire(physics.ColorB, s.cursorX, s.cursorY))
	}
	return out
}
