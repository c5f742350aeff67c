package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputProvider defines the interface for player actions read each frame
type InputProvider interface {
	// Update polls the devices for the current frame
	Update(deltaTime float64)

	// RevealAt returns the screen position of a reveal click this frame
	RevealAt() (image.Point, bool)

	// FlagAt returns the screen position of a flag click this frame
	FlagAt() (image.Point, bool)

	// ShouldReset returns true when a new game was requested from the keyboard
	ShouldReset() bool

	// ShouldToggleDebug returns true when the mine overlay should flip
	ShouldToggleDebug() bool
}

// PlayerInput reads mouse and keyboard through ebiten
type PlayerInput struct {
	cursor      image.Point
	reveal      bool
	flag        bool
	reset       bool
	toggleDebug bool
}

// NewPlayerInput creates a new player input provider
func NewPlayerInput() *PlayerInput {
	return &PlayerInput{}
}

// Update snapshots this frame's clicks and key presses
func (p *PlayerInput) Update(deltaTime float64) {
	x, y := ebiten.CursorPosition()
	p.cursor = image.Pt(x, y)

	// Left click reveals, right click flags
	p.reveal = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.flag = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	p.reset = inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyF2)
	p.toggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

// RevealAt returns the cursor position when the left button was pressed
func (p *PlayerInput) RevealAt() (image.Point, bool) {
	return p.cursor, p.reveal
}

// FlagAt returns the cursor position when the right button was pressed
func (p *PlayerInput) FlagAt() (image.Point, bool) {
	return p.cursor, p.flag
}

// ShouldReset returns true if R or F2 was pressed
func (p *PlayerInput) ShouldReset() bool {
	return p.reset
}

// ShouldToggleDebug returns true if F1 was pressed
func (p *PlayerInput) ShouldToggleDebug() bool {
	return p.toggleDebug
}
