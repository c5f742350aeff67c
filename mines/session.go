package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Outcome is the result of a game
type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("n/a:%d", int(o))
	}
}

// MarshalText encodes the outcome by name
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, v := range []Outcome{Playing, Won, Lost} {
		if v.String() == string(text) {
			*o = v
			return nil
		}
	}
	return fmt.Errorf("mines: unknown outcome %q", text)
}

// Placer chooses the mine layout for a new board
type Placer func(p Params) ([]Pos, error)

// RandomPlacer places mines uniformly at random using rng
func RandomPlacer(rng *rand.Rand) Placer {
	return func(p Params) ([]Pos, error) {
		return PlaceMines(p.Rows, p.Cols, p.Mines, rng)
	}
}

// FixedPlacer always returns the same layout
func FixedPlacer(layout ...Pos) Placer {
	return func(p Params) ([]Pos, error) {
		out := make([]Pos, len(layout))
		copy(out, layout)
		return out, nil
	}
}

// Option configures a Session
type Option func(s *Session)

// WithPlacer overrides the mine layout strategy
func WithPlacer(placer Placer) Option {
	return func(s *Session) {
		s.placer = placer
	}
}

// WithLogger sets the logger used for game events
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is the game controller: it applies player actions to a Board and
// tracks flags, elapsed time and the outcome. It is not safe for concurrent use.
type Session struct {
	params Params
	placer Placer
	logger logrus.FieldLogger

	id          uuid.UUID
	board       *Board
	log         *logrus.Entry
	flagsPlaced int
	elapsed     int
	started     bool
	ended       bool
	outcome     Outcome
	exploded    *Pos
}

// NewSession validates params and deals the first board
func NewSession(params Params, opts ...Option) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		params: params,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.placer == nil {
		s.placer = RandomPlacer(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	}

	if err := s.deal(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the board and starts a fresh game with the same params
func (s *Session) Reset() error {
	if err := s.deal(); err != nil {
		return err
	}
	s.log.Info("game reset")
	return nil
}

func (s *Session) deal() error {
	layout, err := s.placer(s.params)
	if err != nil {
		return fmt.Errorf("place mines: %w", err)
	}
	if len(layout) != s.params.Mines {
		return fmt.Errorf("place mines: got %d positions, want %d", len(layout), s.params.Mines)
	}
	board, err := NewBoard(s.params.Rows, s.params.Cols, layout)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}

	s.id = uuid.New()
	s.board = board
	s.log = s.logger.WithField("game", s.id.String())
	s.flagsPlaced = 0
	s.elapsed = 0
	s.started = false
	s.ended = false
	s.outcome = Playing
	s.exploded = nil
	return nil
}

// Reveal opens the cell at p and returns every position that became visible.
// Flagged and revealed cells are left alone. Hitting a mine ends the game.
func (s *Session) Reveal(p Pos) []Pos {
	s.board.mustBeInBounds(p)
	if s.ended {
		return nil
	}
	s.StartTimer()

	cell := s.board.at(p)
	if cell.State != Hidden {
		return nil
	}
	if cell.Mine {
		return s.explode(p)
	}

	revealed := s.floodFill(p)
	s.log.WithFields(logrus.Fields{
		"row": p.Row, "col": p.Col, "revealed": len(revealed),
	}).Debug("reveal")

	if s.board.RevealedCount() == s.board.SafeCount() {
		s.win()
	}
	return revealed
}

// floodFill reveals p and cascades through zero-count cells. A cell is marked
// revealed when it is queued, so each cell enters the work-list at most once.
func (s *Session) floodFill(p Pos) []Pos {
	b := s.board
	b.reveal(p)
	queue := []Pos{p}
	revealed := make([]Pos, 0, 1)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		revealed = append(revealed, cur)

		if b.at(cur).Adjacent != 0 {
			continue
		}
		b.forEachNeighbor(cur, func(n Pos) {
			if b.at(n).State == Hidden {
				b.reveal(n)
				queue = append(queue, n)
			}
		})
	}
	return revealed
}

// explode ends the game as lost and uncovers every mine that is not flagged
func (s *Session) explode(p Pos) []Pos {
	s.board.reveal(p)
	s.exploded = &p
	s.ended = true
	s.outcome = Lost

	revealed := []Pos{p}
	for _, m := range s.board.Mines() {
		if s.board.at(m).State == Hidden {
			s.board.reveal(m)
			revealed = append(revealed, m)
		}
	}

	s.log.WithFields(logrus.Fields{
		"row": p.Row, "col": p.Col, "elapsed": s.elapsed,
	}).Info("mine hit, game lost")
	return revealed
}

// win ends the game as won and flags the remaining mines
func (s *Session) win() {
	s.ended = true
	s.outcome = Won
	for _, m := range s.board.Mines() {
		if c := s.board.at(m); c.State == Hidden {
			c.State = Flagged
			s.flagsPlaced++
		}
	}
	s.log.WithField("elapsed", s.elapsed).Info("board cleared, game won")
}

// ToggleFlag flips the flag on a hidden or flagged cell and reports whether
// anything changed
func (s *Session) ToggleFlag(p Pos) bool {
	cell := s.board.at(p)
	if s.ended {
		return false
	}

	switch cell.State {
	case Hidden:
		cell.State = Flagged
		s.flagsPlaced++
	case Flagged:
		cell.State = Hidden
		s.flagsPlaced--
	default:
		return false
	}

	s.log.WithFields(logrus.Fields{
		"row": p.Row, "col": p.Col, "flags": s.flagsPlaced,
	}).Debug("flag toggled")
	return true
}

// StartTimer begins elapsed-time accrual. Calls after the first are no-ops.
func (s *Session) StartTimer() {
	if s.started || s.ended {
		return
	}
	s.started = true
	s.log.Debug("timer started")
}

// Tick advances the elapsed counter by one second while the timer runs and
// reports whether it did
func (s *Session) Tick() bool {
	if !s.TimerRunning() {
		return false
	}
	s.elapsed++
	return true
}

// TimerRunning reports whether ticks currently accrue
func (s *Session) TimerRunning() bool {
	return s.started && !s.ended
}

// ID identifies the current game; it changes on every reset
func (s *Session) ID() uuid.UUID { return s.id }

// Params returns the board size and mine count
func (s *Session) Params() Params { return s.params }

// Board returns the current board. Callers must not keep it across a Reset.
func (s *Session) Board() *Board { return s.board }

// FlagsPlaced returns the number of flagged cells
func (s *Session) FlagsPlaced() int { return s.flagsPlaced }

// MinesRemaining returns total mines minus placed flags
func (s *Session) MinesRemaining() int { return s.params.Mines - s.flagsPlaced }

// ElapsedSeconds returns the timer value
func (s *Session) ElapsedSeconds() int { return s.elapsed }

// Started reports whether the timer was started
func (s *Session) Started() bool { return s.started }

// Ended reports whether the game is over
func (s *Session) Ended() bool { return s.ended }

// Outcome returns Playing until the game ends
func (s *Session) Outcome() Outcome { return s.outcome }

// Exploded returns the mine that ended the game, if any
func (s *Session) Exploded() (Pos, bool) {
	if s.exploded == nil {
		return Pos{}, false
	}
	return *s.exploded, true
}
