package game

import "minesweeper/game/layout"

// Config holds window and presentation settings
type Config struct {
	// Layout places the HUD and board in the window
	Layout layout.Layout

	// Title is the window title
	Title string

	// RevealFade is how long a revealed cell takes to fade in, in seconds
	RevealFade float32

	// HUDFontSize is the point size of the counter digits
	HUDFontSize float64

	// CellFontSize is the point size of the adjacency numbers
	CellFontSize float64
}

// DefaultConfig returns a default configuration for a rows x cols board
func DefaultConfig(rows, cols, cellSize int) Config {
	return Config{
		Layout:       layout.New(rows, cols, cellSize),
		Title:        "Minesweeper",
		RevealFade:   0.18,
		HUDFontSize:  26,
		CellFontSize: float64(cellSize) * 0.6,
	}
}

// ScreenWidth returns the window width in pixels
func (c Config) ScreenWidth() int {
	return c.Layout.ScreenWidth()
}

// ScreenHeight returns the window height in pixels
func (c Config) ScreenHeight() int {
	return c.Layout.ScreenHeight()
}
