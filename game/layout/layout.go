// Package layout maps between window pixels and board cells.
package layout

import (
	"image"

	"minesweeper/mines"
)

const (
	// DefaultPadding is the border around the board in pixels
	DefaultPadding = 12

	// DefaultHUDHeight is the height of the counter strip above the board
	DefaultHUDHeight = 48

	// resetButtonSize is the edge of the square reset button in the HUD
	resetButtonSize = 32
)

// Layout describes where the HUD and the board sit in the window
type Layout struct {
	// Rows and Cols are the board dimensions in cells
	Rows, Cols int

	// CellSize is the edge of one cell in pixels
	CellSize int

	// Padding is the border around the HUD and board
	Padding int

	// HUDHeight is the height of the strip with the counters and reset button
	HUDHeight int
}

// New returns a layout with the default padding and HUD height
func New(rows, cols, cellSize int) Layout {
	return Layout{
		Rows:      rows,
		Cols:      cols,
		CellSize:  cellSize,
		Padding:   DefaultPadding,
		HUDHeight: DefaultHUDHeight,
	}
}

// ScreenWidth returns the window width in pixels
func (l Layout) ScreenWidth() int {
	return l.Cols*l.CellSize + 2*l.Padding
}

// ScreenHeight returns the window height in pixels
func (l Layout) ScreenHeight() int {
	return l.HUDHeight + l.Rows*l.CellSize + 2*l.Padding
}

// BoardOrigin returns the top-left pixel of the board
func (l Layout) BoardOrigin() image.Point {
	return image.Pt(l.Padding, l.Padding+l.HUDHeight)
}

// BoardRect returns the pixel bounds of the whole board
func (l Layout) BoardRect() image.Rectangle {
	o := l.BoardOrigin()
	return image.Rect(o.X, o.Y, o.X+l.Cols*l.CellSize, o.Y+l.Rows*l.CellSize)
}

// HUDRect returns the pixel bounds of the counter strip
func (l Layout) HUDRect() image.Rectangle {
	return image.Rect(l.Padding, l.Padding/2, l.ScreenWidth()-l.Padding, l.Padding/2+l.HUDHeight-4)
}

// ResetButtonRect returns the bounds of the reset button, centred in the HUD
func (l Layout) ResetButtonRect() image.Rectangle {
	hud := l.HUDRect()
	cx := (hud.Min.X + hud.Max.X) / 2
	cy := (hud.Min.Y + hud.Max.Y) / 2
	half := resetButtonSize / 2
	return image.Rect(cx-half, cy-half, cx+half, cy+half)
}

// ScreenToCell converts a pixel position to a board position
func (l Layout) ScreenToCell(x, y int) (mines.Pos, bool) {
	if !image.Pt(x, y).In(l.BoardRect()) {
		return mines.Pos{}, false
	}
	o := l.BoardOrigin()
	return mines.Pos{Row: (y - o.Y) / l.CellSize, Col: (x - o.X) / l.CellSize}, true
}

// CellRect returns the pixel bounds of the cell at p
func (l Layout) CellRect(p mines.Pos) image.Rectangle {
	o := l.BoardOrigin()
	x := o.X + p.Col*l.CellSize
	y := o.Y + p.Row*l.CellSize
	return image.Rect(x, y, x+l.CellSize, y+l.CellSize)
}
