package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"minesweeper/mines"
)

func TestScreenSize(t *testing.T) {
	l := New(20, 30, 28)

	assert.Equal(t, 30*28+24, l.ScreenWidth())
	assert.Equal(t, 48+20*28+24, l.ScreenHeight())
	assert.Equal(t, image.Pt(12, 60), l.BoardOrigin())
}

func TestScreenToCell(t *testing.T) {
	l := New(4, 5, 10)

	cases := []struct {
		name string
		x, y int
		want mines.Pos
		ok   bool
	}{
		{name: "top-left pixel", x: 12, y: 60, want: mines.Pos{Row: 0, Col: 0}, ok: true},
		{name: "inside second row", x: 25, y: 75, want: mines.Pos{Row: 1, Col: 1}, ok: true},
		{name: "bottom-right pixel", x: 61, y: 99, want: mines.Pos{Row: 3, Col: 4}, ok: true},
		{name: "right of board", x: 62, y: 70, ok: false},
		{name: "below board", x: 20, y: 100, ok: false},
		{name: "in padding", x: 5, y: 70, ok: false},
		{name: "in hud", x: 20, y: 30, ok: false},
		{name: "negative", x: -3, y: -3, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := l.ScreenToCell(tc.x, tc.y)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCellRectRoundTrip(t *testing.T) {
	l := New(6, 7, 16)

	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			p := mines.Pos{Row: r, Col: c}
			rect := l.CellRect(p)
			assert.Equal(t, 16, rect.Dx())
			assert.Equal(t, 16, rect.Dy())

			got, ok := l.ScreenToCell(rect.Min.X, rect.Min.Y)
			assert.True(t, ok)
			assert.Equal(t, p, got)

			got, ok = l.ScreenToCell(rect.Max.X-1, rect.Max.Y-1)
			assert.True(t, ok)
			assert.Equal(t, p, got)
		}
	}
}

func TestResetButtonInsideHUD(t *testing.T) {
	l := New(9, 9, 24)

	button := l.ResetButtonRect()
	assert.True(t, button.In(l.HUDRect()))
	assert.False(t, button.Overlaps(l.BoardRect()))
}
