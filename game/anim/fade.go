// Package anim holds the tweened cell animations of the desktop window.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"minesweeper/mines"
)

// startAlpha is the opacity a freshly revealed cell fades in from
const startAlpha = 0.25

// Fades tracks a fade-in tween per freshly revealed cell
type Fades struct {
	duration float32
	tweens   map[mines.Pos]*gween.Tween
	alpha    map[mines.Pos]float32
}

// NewFades creates an empty set of fades lasting duration seconds each
func NewFades(duration float32) *Fades {
	return &Fades{
		duration: duration,
		tweens:   make(map[mines.Pos]*gween.Tween),
		alpha:    make(map[mines.Pos]float32),
	}
}

// Start begins a fade for every position, restarting any running one
func (f *Fades) Start(ps []mines.Pos) {
	if f.duration <= 0 {
		return
	}
	for _, p := range ps {
		f.tweens[p] = gween.New(startAlpha, 1, f.duration, ease.OutQuad)
		f.alpha[p] = startAlpha
	}
}

// Update advances every tween by dt seconds and drops the finished ones
func (f *Fades) Update(dt float32) {
	for p, t := range f.tweens {
		current, finished := t.Update(dt)
		if finished {
			delete(f.tweens, p)
			delete(f.alpha, p)
			continue
		}
		f.alpha[p] = current
	}
}

// Alpha returns the current opacity of the cell at p
func (f *Fades) Alpha(p mines.Pos) float32 {
	if a, ok := f.alpha[p]; ok {
		return a
	}
	return 1
}

// Active returns the number of running fades
func (f *Fades) Active() int {
	return len(f.tweens)
}

// Clear stops every fade
func (f *Fades) Clear() {
	clear(f.tweens)
	clear(f.alpha)
}
