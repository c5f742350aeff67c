package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"minesweeper/game/layout"
	"minesweeper/mines"
)

// numberColors are the classic adjacency digit colors, indexed by count
var numberColors = [9]color.Color{
	color.Black,
	colornames.Blue,
	colornames.Green,
	colornames.Red,
	colornames.Navy,
	colornames.Maroon,
	colornames.Teal,
	colornames.Black,
	colornames.Gray,
}

// Renderer draws the HUD and board from a view
type Renderer struct {
	layout   layout.Layout
	hudFace  font.Face
	cellFace font.Face
}

// NewRenderer creates a renderer and loads its fonts
func NewRenderer(config Config) (*Renderer, error) {
	hudFace, err := loadFace(config.HUDFontSize)
	if err != nil {
		return nil, err
	}
	cellFace, err := loadFace(config.CellFontSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		layout:   config.Layout,
		hudFace:  hudFace,
		cellFace: cellFace,
	}, nil
}

// Render draws the whole frame. alpha gives the fade-in opacity of each cell,
// overlay lists mines to outline (debug only).
func (r *Renderer) Render(screen *ebiten.Image, v mines.View, alpha func(mines.Pos) float32, overlay []mines.Pos) {
	r.drawHUD(screen, v)

	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			p := mines.Pos{Row: row, Col: col}
			r.drawCell(screen, p, v.Cells[row][col], alpha(p))
		}
	}

	// Debug overlay is pointless once every mine is on display
	if !v.GameOver {
		for _, p := range overlay {
			x, y, s := r.cellBox(p)
			vector.StrokeRect(screen, x+3, y+3, s-6, s-6, 2, colornames.Orange, false)
		}
	}

	if v.GameOver {
		r.drawBanner(screen, v.Message(), "Press R or click the face for a new game")
	}
}

// drawHUD draws the mine counter, the reset face and the timer
func (r *Renderer) drawHUD(screen *ebiten.Image, v mines.View) {
	hud := r.layout.HUDRect()
	fillRect(screen, hud, colornames.Silver)

	const counterWidth = 64
	left := image.Rect(hud.Min.X+6, hud.Min.Y+6, hud.Min.X+6+counterWidth, hud.Max.Y-6)
	right := image.Rect(hud.Max.X-6-counterWidth, hud.Min.Y+6, hud.Max.X-6, hud.Max.Y-6)
	fillRect(screen, left, color.Black)
	fillRect(screen, right, color.Black)
	r.drawCentered(screen, counterText(v.MinesRemaining), r.hudFace, left, colornames.Red)
	r.drawCentered(screen, counterText(v.ElapsedSeconds), r.hudFace, right, colornames.Red)

	button := r.layout.ResetButtonRect()
	fillRect(screen, button, colornames.Lightgray)
	strokeRect(screen, button, colornames.Dimgray)
	face := ":)"
	switch v.Outcome {
	case mines.Lost:
		face = ":("
	case mines.Won:
		face = "B)"
	}
	r.drawCentered(screen, face, basicfont.Face7x13, button, color.Black)
}

// drawCell draws one cell according to its kind
func (r *Renderer) drawCell(screen *ebiten.Image, p mines.Pos, cell mines.CellView, alpha float32) {
	x, y, s := r.cellBox(p)
	rect := r.layout.CellRect(p)

	switch cell.Kind {
	case mines.KindHidden:
		drawRaised(screen, x, y, s)
	case mines.KindFlagged:
		drawRaised(screen, x, y, s)
		drawFlag(screen, x, y, s)
	case mines.KindRevealed:
		// Fade from the hidden grey into the revealed white
		vector.DrawFilledRect(screen, x, y, s, s, colornames.Lightgray, false)
		vector.DrawFilledRect(screen, x, y, s, s, withAlpha(colornames.White, alpha), false)
		if cell.Adjacent > 0 {
			r.drawCentered(screen, fmt.Sprint(cell.Adjacent), r.cellFace, rect, numberColors[cell.Adjacent])
		}
	case mines.KindMineExploded:
		vector.DrawFilledRect(screen, x, y, s, s, colornames.Red, false)
		drawMine(screen, x, y, s)
	case mines.KindMineMissed:
		vector.DrawFilledRect(screen, x, y, s, s, colornames.Lightcoral, false)
		drawMine(screen, x, y, s)
	case mines.KindMineFlagged:
		vector.DrawFilledRect(screen, x, y, s, s, colornames.Green, false)
		drawFlag(screen, x, y, s)
	case mines.KindFlagWrong:
		vector.DrawFilledRect(screen, x, y, s, s, colornames.Yellow, false)
		drawFlag(screen, x, y, s)
		vector.StrokeLine(screen, x+3, y+3, x+s-3, y+s-3, 2, colornames.Darkred, false)
		vector.StrokeLine(screen, x+s-3, y+3, x+3, y+s-3, 2, colornames.Darkred, false)
	}

	vector.StrokeRect(screen, x, y, s, s, 1, colornames.Darkgray, false)
}

// drawBanner dims the board and shows the game-over message
func (r *Renderer) drawBanner(screen *ebiten.Image, title, hint string) {
	board := r.layout.BoardRect()
	fillRect(screen, board, color.NRGBA{0, 0, 0, 110})

	cy := (board.Min.Y + board.Max.Y) / 2
	panel := image.Rect(board.Min.X+8, cy-40, board.Max.X-8, cy+40)
	fillRect(screen, panel, color.NRGBA{240, 240, 240, 235})
	strokeRect(screen, panel, colornames.Dimgray)

	titleBox := image.Rect(panel.Min.X, panel.Min.Y, panel.Max.X, cy+8)
	hintBox := image.Rect(panel.Min.X, cy+8, panel.Max.X, panel.Max.Y)
	r.drawCentered(screen, title, r.hudFace, titleBox, colornames.Black)
	r.drawCentered(screen, hint, basicfont.Face7x13, hintBox, colornames.Dimgray)
}

// drawCentered draws s centred in box
func (r *Renderer) drawCentered(screen *ebiten.Image, s string, face font.Face, box image.Rectangle, clr color.Color) {
	b := text.BoundString(face, s)
	x := (box.Min.X+box.Max.X)/2 - b.Dx()/2 - b.Min.X
	y := (box.Min.Y+box.Max.Y)/2 - b.Dy()/2 - b.Min.Y
	text.Draw(screen, s, face, x, y, clr)
}

// cellBox returns the float geometry of the cell at p
func (r *Renderer) cellBox(p mines.Pos) (x, y, size float32) {
	rect := r.layout.CellRect(p)
	return float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx())
}

// drawRaised draws an unrevealed cell with a bevel
func drawRaised(screen *ebiten.Image, x, y, s float32) {
	vector.DrawFilledRect(screen, x, y, s, s, colornames.Lightgray, false)
	vector.StrokeLine(screen, x, y+1, x+s, y+1, 2, colornames.White, false)
	vector.StrokeLine(screen, x+1, y, x+1, y+s, 2, colornames.White, false)
	vector.StrokeLine(screen, x, y+s-1, x+s, y+s-1, 2, colornames.Gray, false)
	vector.StrokeLine(screen, x+s-1, y, x+s-1, y+s, 2, colornames.Gray, false)
}

// drawFlag draws a pennant on a pole
func drawFlag(screen *ebiten.Image, x, y, s float32) {
	poleX := x + s*0.55
	vector.StrokeLine(screen, poleX, y+s*0.2, poleX, y+s*0.78, 2, colornames.Black, false)
	vector.DrawFilledRect(screen, x+s*0.3, y+s*0.74, s*0.45, s*0.08, colornames.Black, false)
	vector.DrawFilledRect(screen, x+s*0.28, y+s*0.2, poleX-(x+s*0.28), s*0.24, colornames.Red, false)
}

// drawMine draws a mine with four spikes
func drawMine(screen *ebiten.Image, x, y, s float32) {
	cx, cy := x+s/2, y+s/2
	vector.StrokeLine(screen, cx-s*0.32, cy, cx+s*0.32, cy, 2, colornames.Black, false)
	vector.StrokeLine(screen, cx, cy-s*0.32, cx, cy+s*0.32, 2, colornames.Black, false)
	vector.DrawFilledCircle(screen, cx, cy, s*0.22, colornames.Black, true)
	vector.DrawFilledCircle(screen, cx-s*0.07, cy-s*0.07, s*0.05, colornames.White, true)
}

func fillRect(screen *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func strokeRect(screen *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, clr, false)
}

func withAlpha(c color.RGBA, alpha float32) color.Color {
	alpha = max(0, min(alpha, 1))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * alpha)}
}

// counterText formats a HUD counter the way the classic seven-segment display does
func counterText(n int) string {
	if n < 0 {
		return fmt.Sprintf("-%02d", min(-n, 99))
	}
	return fmt.Sprintf("%03d", min(n, 999))
}
