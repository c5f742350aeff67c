package tty

import (
	"github.com/nsf/termbox-go"

	"minesweeper/mines"
)

// Each cell takes two terminal columns: the glyph and a gap
const cellWidth = 2

// Grid places the board on the terminal below a status line
type Grid struct {
	Rows, Cols int
	Left, Top  int
}

func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Left: 2, Top: 2}
}

// CellOrigin returns the terminal column and row of the glyph of p
func (g Grid) CellOrigin(p mines.Pos) (x, y int) {
	return g.Left + p.Col*cellWidth, g.Top + p.Row
}

// ScreenToCell maps a terminal position onto the board
func (g Grid) ScreenToCell(x, y int) (mines.Pos, bool) {
	if x < g.Left || y < g.Top {
		return mines.Pos{}, false
	}
	p := mines.Pos{Row: y - g.Top, Col: (x - g.Left) / cellWidth}
	if p.Row >= g.Rows || p.Col >= g.Cols {
		return mines.Pos{}, false
	}
	return p, true
}

// Width is the number of terminal columns the board spans
func (g Grid) Width() int {
	return g.Left + g.Cols*cellWidth
}

// Glyph is one terminal cell
type Glyph struct {
	Ch     rune
	Fg, Bg termbox.Attribute
}

var numberAttrs = [9]termbox.Attribute{
	termbox.ColorDefault,
	termbox.ColorBlue,
	termbox.ColorGreen,
	termbox.ColorRed,
	termbox.ColorMagenta,
	termbox.ColorYellow,
	termbox.ColorCyan,
	termbox.ColorWhite,
	termbox.ColorWhite | termbox.AttrBold,
}

// GlyphFor returns how a cell looks in the terminal
func GlyphFor(c mines.CellView) Glyph {
	switch c.Kind {
	case mines.KindHidden:
		return Glyph{Ch: '.', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	case mines.KindRevealed:
		if c.Adjacent == 0 {
			return Glyph{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
		}
		return Glyph{Ch: rune('0' + c.Adjacent), Fg: numberAttrs[c.Adjacent] | termbox.AttrBold, Bg: termbox.ColorDefault}
	case mines.KindFlagged:
		return Glyph{Ch: 'F', Fg: termbox.ColorRed | termbox.AttrBold, Bg: termbox.ColorDefault}
	case mines.KindMineExploded:
		return Glyph{Ch: '*', Fg: termbox.ColorWhite | termbox.AttrBold, Bg: termbox.ColorRed}
	case mines.KindMineMissed:
		return Glyph{Ch: '*', Fg: termbox.ColorRed, Bg: termbox.ColorDefault}
	case mines.KindMineFlagged:
		return Glyph{Ch: 'F', Fg: termbox.ColorGreen | termbox.AttrBold, Bg: termbox.ColorDefault}
	case mines.KindFlagWrong:
		return Glyph{Ch: 'X', Fg: termbox.ColorYellow | termbox.AttrBold, Bg: termbox.ColorDefault}
	}
	return Glyph{Ch: '?', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
}
