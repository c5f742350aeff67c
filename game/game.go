// Package game runs a minesweeper session inside an ebiten window.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"minesweeper/game/anim"
	"minesweeper/mines"
)

// Game adapts a mines.Session to the ebiten game loop. ebiten calls Update on
// one goroutine, so every action and tick is applied one at a time.
type Game struct {
	session  *mines.Session
	renderer *Renderer
	input    InputProvider
	fades    *anim.Fades
	config   Config
	log      logrus.FieldLogger

	// View derived after the last change
	view mines.View

	// Accumulated frame time not yet turned into a timer tick
	tickTimer float64

	// Set once the game-over of the current game has been announced
	announced bool

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a new game instance around an existing session
func NewGame(config Config, session *mines.Session, logger logrus.FieldLogger) (*Game, error) {
	renderer, err := NewRenderer(config)
	if err != nil {
		return nil, err
	}

	g := &Game{
		session:        session,
		renderer:       renderer,
		input:          NewPlayerInput(),
		fades:          anim.NewFades(config.RevealFade),
		config:         config,
		log:            logger,
		lastUpdateTime: time.Now(),
	}
	g.view = session.View()
	return g, nil
}

// Update applies this frame's input and advances the timer
func (g *Game) Update() error {
	// Calculate delta time
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	g.input.Update(deltaTime)

	if g.input.ShouldToggleDebug() {
		debugState := GetDebugState()
		debugState.ShowMines = !debugState.ShowMines
	}

	changed := false
	if g.input.ShouldReset() {
		if err := g.reset(); err != nil {
			return err
		}
		changed = true
	}

	if pt, ok := g.input.RevealAt(); ok {
		if pt.In(g.config.Layout.ResetButtonRect()) {
			if err := g.reset(); err != nil {
				return err
			}
			changed = true
		} else if p, ok := g.config.Layout.ScreenToCell(pt.X, pt.Y); ok {
			revealed := g.session.Reveal(p)
			g.fades.Start(revealed)
			changed = true
		}
	}

	if pt, ok := g.input.FlagAt(); ok {
		if p, ok := g.config.Layout.ScreenToCell(pt.X, pt.Y); ok {
			changed = g.session.ToggleFlag(p) || changed
		}
	}

	// One tick per whole second of running time
	if g.session.TimerRunning() {
		g.tickTimer += deltaTime
		for g.tickTimer >= 1.0 {
			g.tickTimer -= 1.0
			changed = g.session.Tick() || changed
		}
	} else {
		g.tickTimer = 0
	}

	g.fades.Update(float32(deltaTime))

	if changed {
		g.view = g.session.View()
	}

	if g.view.GameOver && !g.announced {
		g.announced = true
		g.log.WithFields(logrus.Fields{
			"outcome": g.view.Outcome.String(),
			"elapsed": g.view.ElapsedSeconds,
		}).Info(g.view.Message())
	}

	return nil
}

// reset deals a new board and clears per-game presentation state
func (g *Game) reset() error {
	if err := g.session.Reset(); err != nil {
		return err
	}
	g.fades.Clear()
	g.tickTimer = 0
	g.announced = false
	return nil
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{192, 192, 192, 255})

	var overlay []mines.Pos
	if GetDebugState().ShowMines {
		overlay = g.session.Board().Mines()
	}
	g.renderer.Render(screen, g.view, g.fades.Alpha, overlay)

	if GetDebugState().ShowMines {
		status := fmt.Sprintf("DEBUG revealed %d/%d  FPS %.0f",
			g.session.Board().RevealedCount(), g.session.Board().SafeCount(), ebiten.ActualFPS())
		ebitenutil.DebugPrintAt(screen, status, g.config.Layout.Padding, g.config.ScreenHeight()-g.config.Layout.Padding-4)
	}
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth(), g.config.ScreenHeight()
}
