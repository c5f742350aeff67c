package mines

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when rows or columns are not positive
	ErrInvalidSize = errors.New("mines: rows and cols must be positive")

	// ErrNegativeMines is returned for a negative mine count
	ErrNegativeMines = errors.New("mines: mine count must not be negative")

	// ErrTooManyMines is returned when the mines do not fit on the board
	ErrTooManyMines = errors.New("mines: more mines than cells")

	// ErrOutOfBounds is returned when an explicit layout names a position off the board
	ErrOutOfBounds = errors.New("mines: position out of bounds")

	// ErrDuplicateMine is returned when an explicit layout names a position twice
	ErrDuplicateMine = errors.New("mines: duplicate mine position")
)

// Params is the fixed size and mine count of a game
type Params struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

// Validate rejects parameters that cannot produce a board
func (p Params) Validate() error {
	switch {
	case p.Rows <= 0 || p.Cols <= 0:
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, p.Rows, p.Cols)
	case p.Mines < 0:
		return fmt.Errorf("%w: %d", ErrNegativeMines, p.Mines)
	case p.Mines > p.Rows*p.Cols:
		return fmt.Errorf("%w: %d > %d*%d", ErrTooManyMines, p.Mines, p.Rows, p.Cols)
	}
	return nil
}
