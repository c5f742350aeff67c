// Package mines holds the minesweeper board model and the game controller.
package mines

import (
	"fmt"
	"math/rand/v2"
)

// Pos is a cell position on the board
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the position as "(row,col)"
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellState is the visibility state of a cell
type CellState int

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

// String returns the state name
func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return fmt.Sprintf("n/a:%d", int(s))
	}
}

// Cell holds the state of a single grid position
type Cell struct {
	Mine     bool
	State    CellState
	Adjacent int // Mines in the 8-neighbourhood, cached once the cell is revealed
}

// Board is a rectangular grid of cells with a fixed mine layout
type Board struct {
	rows, cols int
	mineCount  int
	cells      []Cell // Row-major, rows*cols entries
	revealed   int    // Non-mine cells in the Revealed state
}

// NewBoard creates a board with mines at exactly the given positions.
// Positions must be in bounds and distinct.
func NewBoard(rows, cols int, mines []Pos) (*Board, error) {
	if err := (Params{Rows: rows, Cols: cols, Mines: len(mines)}).Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		rows:      rows,
		cols:      cols,
		mineCount: len(mines),
		cells:     make([]Cell, rows*cols),
	}
	for _, p := range mines {
		if !b.InBounds(p) {
			return nil, fmt.Errorf("%w: mine at %v", ErrOutOfBounds, p)
		}
		c := &b.cells[b.index(p)]
		if c.Mine {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateMine, p)
		}
		c.Mine = true
	}
	return b, nil
}

// PlaceMines picks count distinct cells uniformly at random
func PlaceMines(rows, cols, count int, rng *rand.Rand) ([]Pos, error) {
	if err := (Params{Rows: rows, Cols: cols, Mines: count}).Validate(); err != nil {
		return nil, err
	}

	// Partial Fisher-Yates: the first count slots end up as a uniform sample
	candidates := make([]int, rows*cols)
	for i := range candidates {
		candidates[i] = i
	}
	placed := make([]Pos, 0, count)
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		placed = append(placed, Pos{Row: candidates[i] / cols, Col: candidates[i] % cols})
	}
	return placed, nil
}

// Rows returns the number of rows
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns
func (b *Board) Cols() int { return b.cols }

// MineCount returns the number of mines on the board
func (b *Board) MineCount() int { return b.mineCount }

// RevealedCount returns how many non-mine cells have been revealed
func (b *Board) RevealedCount() int { return b.revealed }

// SafeCount returns the number of cells without a mine
func (b *Board) SafeCount() int { return b.rows*b.cols - b.mineCount }

// InBounds reports whether p lies on the board
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

// Cell returns a copy of the cell at p
func (b *Board) Cell(p Pos) Cell {
	return *b.at(p)
}

// IsMine reports whether the cell at p holds a mine
func (b *Board) IsMine(p Pos) bool {
	return b.at(p).Mine
}

// CountAdjacentMines counts mines in the 8-neighbourhood of p, clamped to the board
func (b *Board) CountAdjacentMines(p Pos) int {
	b.mustBeInBounds(p)
	count := 0
	b.forEachNeighbor(p, func(n Pos) {
		if b.cells[b.index(n)].Mine {
			count++
		}
	})
	return count
}

// Neighbors returns the in-bounds positions around p, excluding p itself
func (b *Board) Neighbors(p Pos) []Pos {
	b.mustBeInBounds(p)
	out := make([]Pos, 0, 8)
	b.forEachNeighbor(p, func(n Pos) {
		out = append(out, n)
	})
	return out
}

// Mines returns the positions of every mine in row-major order
func (b *Board) Mines() []Pos {
	out := make([]Pos, 0, b.mineCount)
	for i, c := range b.cells {
		if c.Mine {
			out = append(out, Pos{Row: i / b.cols, Col: i % b.cols})
		}
	}
	return out
}

func (b *Board) forEachNeighbor(p Pos, fn func(n Pos)) {
	for r := max(0, p.Row-1); r <= min(p.Row+1, b.rows-1); r++ {
		for c := max(0, p.Col-1); c <= min(p.Col+1, b.cols-1); c++ {
			if r == p.Row && c == p.Col {
				continue
			}
			fn(Pos{Row: r, Col: c})
		}
	}
}

// reveal marks a hidden cell as revealed and caches its adjacency count
func (b *Board) reveal(p Pos) *Cell {
	c := b.at(p)
	c.State = Revealed
	if !c.Mine {
		c.Adjacent = b.CountAdjacentMines(p)
		b.revealed++
	}
	return c
}

func (b *Board) at(p Pos) *Cell {
	b.mustBeInBounds(p)
	return &b.cells[b.index(p)]
}

func (b *Board) index(p Pos) int {
	return p.Row*b.cols + p.Col
}

func (b *Board) mustBeInBounds(p Pos) {
	if !b.InBounds(p) {
		panic(fmt.Sprintf("mines: position %v outside %dx%d board", p, b.rows, b.cols))
	}
}
