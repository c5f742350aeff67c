package mines

import "fmt"

// CellKind is what a front-end should draw for a cell
type CellKind int

const (
	KindHidden       CellKind = iota
	KindRevealed              // Safe cell, draw CellView.Adjacent
	KindFlagged               // Flag on a cell while the game runs
	KindMineExploded          // The mine that ended the game
	KindMineFlagged           // Mine correctly flagged, shown after the game ends
	KindMineMissed            // Mine that was never flagged, shown after a loss
	KindFlagWrong             // Flag on a safe cell, shown after a loss
)

var kindNames = [...]string{
	KindHidden:       "hidden",
	KindRevealed:     "revealed",
	KindFlagged:      "flagged",
	KindMineExploded: "mine_exploded",
	KindMineFlagged:  "mine_flagged",
	KindMineMissed:   "mine_missed",
	KindFlagWrong:    "flag_wrong",
}

// String returns the kind name used on the wire
func (k CellKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("n/a:%d", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CellKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = CellKind(i)
			return nil
		}
	}
	return fmt.Errorf("mines: unknown cell kind %q", text)
}

// CellView is the render state of one cell
type CellView struct {
	Kind     CellKind `json:"kind"`
	Adjacent int      `json:"adjacent,omitempty"`
}

// View is everything a front-end needs to draw the game
type View struct {
	GameID         string       `json:"game_id"`
	Rows           int          `json:"rows"`
	Cols           int          `json:"cols"`
	Cells          [][]CellView `json:"cells"`
	MinesRemaining int          `json:"mines_remaining"`
	ElapsedSeconds int          `json:"elapsed_seconds"`
	Outcome        Outcome      `json:"outcome"`
	GameOver       bool         `json:"game_over"`
}

// View derives the render state from the current model
func (s *Session) View() View {
	b := s.board
	cells := make([][]CellView, b.rows)
	for r := 0; r < b.rows; r++ {
		cells[r] = make([]CellView, b.cols)
		for c := 0; c < b.cols; c++ {
			cells[r][c] = s.cellView(Pos{Row: r, Col: c})
		}
	}

	return View{
		GameID:         s.id.String(),
		Rows:           b.rows,
		Cols:           b.cols,
		Cells:          cells,
		MinesRemaining: s.MinesRemaining(),
		ElapsedSeconds: s.elapsed,
		Outcome:        s.outcome,
		GameOver:       s.ended,
	}
}

func (s *Session) cellView(p Pos) CellView {
	cell := s.board.Cell(p)
	switch cell.State {
	case Revealed:
		if !cell.Mine {
			return CellView{Kind: KindRevealed, Adjacent: cell.Adjacent}
		}
		if s.exploded != nil && *s.exploded == p {
			return CellView{Kind: KindMineExploded}
		}
		return CellView{Kind: KindMineMissed}
	case Flagged:
		if !s.ended {
			return CellView{Kind: KindFlagged}
		}
		if cell.Mine {
			return CellView{Kind: KindMineFlagged}
		}
		return CellView{Kind: KindFlagWrong}
	default:
		return CellView{Kind: KindHidden}
	}
}

// Message is the game-over notification text, empty while playing
func (v View) Message() string {
	switch v.Outcome {
	case Lost:
		return "Game Over!"
	case Won:
		return "You win!"
	default:
		return ""
	}
}
