package tty

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minesweeper/mines"
)

func newTestUI(t *testing.T) *UI {
	t.Helper()
	logger, _ := test.NewNullLogger()
	session, err := mines.NewSession(
		mines.Params{Rows: 4, Cols: 4, Mines: 1},
		mines.WithPlacer(mines.FixedPlacer(mines.Pos{Row: 0, Col: 0})),
		mines.WithLogger(logger),
	)
	require.NoError(t, err)
	return NewUI(session, logger)
}

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   termbox.Event
		want Command
	}{
		{"up", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}, CmdUp},
		{"down", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowDown}, CmdDown},
		{"left", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowLeft}, CmdLeft},
		{"right", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowRight}, CmdRight},
		{"vi down", termbox.Event{Type: termbox.EventKey, Ch: 'j'}, CmdDown},
		{"space", termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, CmdReveal},
		{"enter", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEnter}, CmdReveal},
		{"flag", termbox.Event{Type: termbox.EventKey, Ch: 'f'}, CmdFlag},
		{"reset", termbox.Event{Type: termbox.EventKey, Ch: 'r'}, CmdReset},
		{"f2", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyF2}, CmdReset},
		{"quit", termbox.Event{Type: termbox.EventKey, Ch: 'q'}, CmdQuit},
		{"esc", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, CmdQuit},
		{"other", termbox.Event{Type: termbox.EventKey, Ch: 'z'}, CmdNone},
		{"resize", termbox.Event{Type: termbox.EventResize}, CmdNone},
	}

	g := NewGrid(4, 4)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, hasPos := Translate(tt.ev, g)
			assert.Equal(t, tt.want, cmd)
			assert.False(t, hasPos)
		})
	}
}

func TestTranslateMouse(t *testing.T) {
	g := NewGrid(4, 4)
	x, y := g.CellOrigin(mines.Pos{Row: 2, Col: 3})

	cmd, p, ok := Translate(termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseLeft, MouseX: x, MouseY: y}, g)
	assert.Equal(t, CmdReveal, cmd)
	assert.Equal(t, mines.Pos{Row: 2, Col: 3}, p)
	assert.True(t, ok)

	cmd, p, ok = Translate(termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseRight, MouseX: x + 1, MouseY: y}, g)
	assert.Equal(t, CmdFlag, cmd)
	assert.Equal(t, mines.Pos{Row: 2, Col: 3}, p)
	assert.True(t, ok)

	cmd, _, ok = Translate(termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseLeft, MouseX: 0, MouseY: 0}, g)
	assert.Equal(t, CmdNone, cmd)
	assert.False(t, ok)
}

func TestScreenToCell(t *testing.T) {
	g := NewGrid(3, 5)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			p := mines.Pos{Row: row, Col: col}
			x, y := g.CellOrigin(p)
			got, ok := g.ScreenToCell(x, y)
			require.True(t, ok)
			assert.Equal(t, p, got)
		}
	}

	_, ok := g.ScreenToCell(g.Width(), g.Top)
	assert.False(t, ok)
	_, ok = g.ScreenToCell(g.Left, g.Top+g.Rows)
	assert.False(t, ok)
	_, ok = g.ScreenToCell(g.Left-1, g.Top)
	assert.False(t, ok)
}

func TestMoveClamps(t *testing.T) {
	assert.Equal(t, mines.Pos{Row: 0, Col: 0}, Move(mines.Pos{Row: 0, Col: 0}, CmdUp, 4, 4))
	assert.Equal(t, mines.Pos{Row: 0, Col: 0}, Move(mines.Pos{Row: 0, Col: 0}, CmdLeft, 4, 4))
	assert.Equal(t, mines.Pos{Row: 3, Col: 3}, Move(mines.Pos{Row: 3, Col: 3}, CmdDown, 4, 4))
	assert.Equal(t, mines.Pos{Row: 3, Col: 3}, Move(mines.Pos{Row: 3, Col: 3}, CmdRight, 4, 4))
	assert.Equal(t, mines.Pos{Row: 2, Col: 1}, Move(mines.Pos{Row: 1, Col: 1}, CmdDown, 4, 4))
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, '.', GlyphFor(mines.CellView{Kind: mines.KindHidden}).Ch)
	assert.Equal(t, ' ', GlyphFor(mines.CellView{Kind: mines.KindRevealed}).Ch)
	assert.Equal(t, '3', GlyphFor(mines.CellView{Kind: mines.KindRevealed, Adjacent: 3}).Ch)
	assert.Equal(t, 'F', GlyphFor(mines.CellView{Kind: mines.KindFlagged}).Ch)
	assert.Equal(t, termbox.ColorRed, GlyphFor(mines.CellView{Kind: mines.KindMineExploded}).Bg)
	assert.Equal(t, '*', GlyphFor(mines.CellView{Kind: mines.KindMineMissed}).Ch)
	assert.Equal(t, 'X', GlyphFor(mines.CellView{Kind: mines.KindFlagWrong}).Ch)

	flagged := GlyphFor(mines.CellView{Kind: mines.KindFlagged})
	right := GlyphFor(mines.CellView{Kind: mines.KindMineFlagged})
	assert.NotEqual(t, flagged.Fg, right.Fg, "correct flags change color after the game")
}

func TestApplyKeyboardGame(t *testing.T) {
	u := newTestUI(t)

	for _, cmd := range []Command{CmdDown, CmdRight} {
		_, err := u.Apply(cmd, mines.Pos{}, false)
		require.NoError(t, err)
	}
	assert.Equal(t, mines.Pos{Row: 1, Col: 1}, u.Cursor())

	_, err := u.Apply(CmdReveal, mines.Pos{}, false)
	require.NoError(t, err)
	assert.Equal(t, mines.Revealed, u.session.Board().Cell(mines.Pos{Row: 1, Col: 1}).State)
	assert.True(t, u.session.TimerRunning())

	_, err = u.Apply(CmdFlag, mines.Pos{Row: 0, Col: 0}, true)
	require.NoError(t, err)
	assert.Equal(t, mines.Pos{Row: 0, Col: 0}, u.Cursor())
	assert.Equal(t, 0, u.session.MinesRemaining())

	_, err = u.Apply(CmdReveal, mines.Pos{Row: 3, Col: 3}, true)
	require.NoError(t, err)
	assert.Equal(t, mines.Won, u.session.Outcome())

	id := u.session.ID()
	_, err = u.Apply(CmdReset, mines.Pos{}, false)
	require.NoError(t, err)
	assert.NotEqual(t, id, u.session.ID())
	assert.Equal(t, mines.Playing, u.session.Outcome())

	quit, err := u.Apply(CmdQuit, mines.Pos{}, false)
	require.NoError(t, err)
	assert.True(t, quit)
}
