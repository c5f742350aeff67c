package mines

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, rows, cols int, layout ...Pos) (*Session, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s, err := NewSession(
		Params{Rows: rows, Cols: cols, Mines: len(layout)},
		WithPlacer(FixedPlacer(layout...)),
		WithLogger(logger),
	)
	require.NoError(t, err)
	return s, hook
}

func revealedSet(b *Board) map[Pos]bool {
	out := make(map[Pos]bool)
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			p := Pos{r, c}
			if b.Cell(p).State == Revealed {
				out[p] = true
			}
		}
	}
	return out
}

func TestRevealCascadesWholeBoard(t *testing.T) {
	s, _ := newTestSession(t, 4, 4, Pos{0, 0})

	revealed := s.Reveal(Pos{3, 3})

	assert.Len(t, revealed, 15)
	assert.Equal(t, 15, s.Board().RevealedCount())
	assert.Equal(t, Flagged, s.Board().Cell(Pos{0, 0}).State, "remaining mine is flagged on win")
	assert.Equal(t, 1, s.Board().Cell(Pos{1, 1}).Adjacent)
	assert.Equal(t, 0, s.Board().Cell(Pos{3, 3}).Adjacent)
	assert.Equal(t, Won, s.Outcome())
	assert.True(t, s.Ended())
	assert.Equal(t, 0, s.MinesRemaining())
}

func TestRevealNumberedCellDoesNotCascade(t *testing.T) {
	s, _ := newTestSession(t, 4, 4, Pos{0, 0})

	revealed := s.Reveal(Pos{1, 1})

	assert.Equal(t, []Pos{{1, 1}}, revealed)
	assert.Equal(t, 1, s.Board().Cell(Pos{1, 1}).Adjacent)
	assert.Equal(t, Hidden, s.Board().Cell(Pos{2, 2}).State)
	assert.Equal(t, Playing, s.Outcome())
}

func TestRevealStopsAtFlags(t *testing.T) {
	s, _ := newTestSession(t, 4, 4, Pos{0, 0})
	require.True(t, s.ToggleFlag(Pos{3, 0}))

	revealed := s.Reveal(Pos{3, 3})

	assert.Len(t, revealed, 14)
	assert.Equal(t, Flagged, s.Board().Cell(Pos{3, 0}).State)
	assert.False(t, s.Ended(), "a flagged safe cell keeps the game open")
}

func TestFloodFillRevealsZeroRegionAndBorder(t *testing.T) {
	const rows, cols, count = 10, 12, 15

	for seed := uint64(0); seed < 40; seed++ {
		layout, err := PlaceMines(rows, cols, count, testRand(seed))
		require.NoError(t, err)
		ref, err := NewBoard(rows, cols, layout)
		require.NoError(t, err)

		start, found := Pos{}, false
		for r := 0; r < rows && !found; r++ {
			for c := 0; c < cols && !found; c++ {
				p := Pos{r, c}
				if !ref.IsMine(p) && ref.CountAdjacentMines(p) == 0 {
					start, found = p, true
				}
			}
		}
		if !found {
			continue
		}

		// Independent breadth-first walk over the reference board
		expected := map[Pos]bool{start: true}
		queue := []Pos{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if ref.CountAdjacentMines(cur) != 0 {
				continue
			}
			for _, n := range ref.Neighbors(cur) {
				if !expected[n] {
					expected[n] = true
					queue = append(queue, n)
				}
			}
		}

		s, _ := newTestSession(t, rows, cols, layout...)
		revealed := s.Reveal(start)

		assert.Equal(t, expected, revealedSet(s.Board()), "seed %d", seed)
		assert.Len(t, revealed, len(expected), "each cell is revealed once, seed %d", seed)
		assert.NotEqual(t, Lost, s.Outcome())
	}
}

func TestFlagThenRevealIsNoop(t *testing.T) {
	s, _ := newTestSession(t, 3, 3, Pos{1, 1})

	require.True(t, s.ToggleFlag(Pos{0, 0}))
	assert.Nil(t, s.Reveal(Pos{0, 0}))
	assert.Equal(t, Flagged, s.Board().Cell(Pos{0, 0}).State)

	// Flagging a mine protects it too
	require.True(t, s.ToggleFlag(Pos{1, 1}))
	assert.Nil(t, s.Reveal(Pos{1, 1}))
	assert.False(t, s.Ended())
}

func TestToggleFlagCounts(t *testing.T) {
	s, _ := newTestSession(t, 3, 3, Pos{1, 1})
	assert.Equal(t, 1, s.MinesRemaining())

	assert.True(t, s.ToggleFlag(Pos{0, 0}))
	assert.True(t, s.ToggleFlag(Pos{0, 1}))
	assert.Equal(t, 2, s.FlagsPlaced())
	assert.Equal(t, -1, s.MinesRemaining())

	assert.True(t, s.ToggleFlag(Pos{0, 1}))
	assert.Equal(t, 1, s.FlagsPlaced())
	assert.Equal(t, Hidden, s.Board().Cell(Pos{0, 1}).State)

	s.Reveal(Pos{2, 2})
	assert.False(t, s.ToggleFlag(Pos{2, 2}), "revealed cells cannot be flagged")
	assert.Equal(t, 1, s.FlagsPlaced())
	assert.True(t, s.TimerRunning())
}

func TestRevealMineEndsGame(t *testing.T) {
	s, hook := newTestSession(t, 3, 3, Pos{0, 0}, Pos{2, 0}, Pos{2, 2})
	require.True(t, s.ToggleFlag(Pos{0, 0}))
	require.True(t, s.ToggleFlag(Pos{0, 1}))

	revealed := s.Reveal(Pos{2, 2})

	assert.ElementsMatch(t, []Pos{{2, 2}, {2, 0}}, revealed)
	assert.True(t, s.Ended())
	assert.Equal(t, Lost, s.Outcome())
	exploded, ok := s.Exploded()
	assert.True(t, ok)
	assert.Equal(t, Pos{2, 2}, exploded)

	for _, m := range s.Board().Mines() {
		assert.NotEqual(t, Hidden, s.Board().Cell(m).State, "mine %v stays hidden", m)
	}

	v := s.View()
	assert.Equal(t, KindMineExploded, v.Cells[2][2].Kind)
	assert.Equal(t, KindMineMissed, v.Cells[2][0].Kind)
	assert.Equal(t, KindMineFlagged, v.Cells[0][0].Kind)
	assert.Equal(t, KindFlagWrong, v.Cells[0][1].Kind)
	assert.Equal(t, KindHidden, v.Cells[1][1].Kind)
	assert.True(t, v.GameOver)
	assert.Equal(t, "Game Over!", v.Message())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "mine hit, game lost", entry.Message)
	assert.Equal(t, s.ID().String(), entry.Data["game"])
}

func TestEndedGameIgnoresActions(t *testing.T) {
	s, _ := newTestSession(t, 3, 3, Pos{0, 0})
	s.Reveal(Pos{0, 0})
	require.True(t, s.Ended())

	assert.Nil(t, s.Reveal(Pos{2, 2}))
	assert.False(t, s.ToggleFlag(Pos{2, 2}))
	assert.Equal(t, Hidden, s.Board().Cell(Pos{2, 2}).State)
	assert.False(t, s.Tick())
	assert.Equal(t, 0, s.ElapsedSeconds())
}

func TestTimer(t *testing.T) {
	s, _ := newTestSession(t, 3, 3, Pos{0, 0})

	assert.False(t, s.Tick(), "timer waits for the first reveal")
	s.ToggleFlag(Pos{2, 2})
	assert.False(t, s.Started(), "flagging does not start the timer")

	// A reveal click on a flagged cell still starts the clock
	s.Reveal(Pos{2, 2})
	assert.True(t, s.Started())

	assert.True(t, s.Tick())
	assert.True(t, s.Tick())
	s.StartTimer()
	assert.True(t, s.Tick())
	assert.Equal(t, 3, s.ElapsedSeconds())

	s.Reveal(Pos{0, 0})
	assert.False(t, s.TimerRunning())
	assert.False(t, s.Tick())
	assert.Equal(t, 3, s.ElapsedSeconds())
}

func TestReset(t *testing.T) {
	s, hook := newTestSession(t, 4, 4, Pos{0, 0}, Pos{3, 3})
	firstID := s.ID()
	firstBoard := s.Board()

	s.ToggleFlag(Pos{3, 3})
	s.Reveal(Pos{1, 1})
	s.Tick()
	s.Reveal(Pos{0, 0})
	require.True(t, s.Ended())

	require.NoError(t, s.Reset())

	assert.NotEqual(t, firstID, s.ID())
	assert.NotSame(t, firstBoard, s.Board())
	assert.Equal(t, 0, s.FlagsPlaced())
	assert.Equal(t, 0, s.ElapsedSeconds())
	assert.Equal(t, 2, s.MinesRemaining())
	assert.False(t, s.Started())
	assert.False(t, s.Ended())
	assert.Equal(t, Playing, s.Outcome())
	_, exploded := s.Exploded()
	assert.False(t, exploded)
	assert.Empty(t, revealedSet(s.Board()))
	for _, row := range s.View().Cells {
		for _, cell := range row {
			assert.Equal(t, KindHidden, cell.Kind)
		}
	}
	assert.Equal(t, "game reset", hook.LastEntry().Message)
}

func TestResetUsesRandomPlacer(t *testing.T) {
	s, err := NewSession(Params{Rows: 9, Cols: 9, Mines: 10}, WithPlacer(RandomPlacer(testRand(3))))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Reset())
		assert.Len(t, s.Board().Mines(), 10)
	}
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(Params{Rows: 2, Cols: 2, Mines: 5})
	assert.ErrorIs(t, err, ErrTooManyMines)

	_, err = NewSession(Params{Rows: 0, Cols: 2, Mines: 0})
	assert.ErrorIs(t, err, ErrInvalidSize)

	boom := errors.New("boom")
	_, err = NewSession(Params{Rows: 2, Cols: 2, Mines: 1}, WithPlacer(func(Params) ([]Pos, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)

	_, err = NewSession(Params{Rows: 2, Cols: 2, Mines: 2}, WithPlacer(FixedPlacer(Pos{0, 0})))
	assert.Error(t, err)
}

func TestSessionPanicsOutOfBounds(t *testing.T) {
	s, _ := newTestSession(t, 2, 2)

	assert.Panics(t, func() { s.Reveal(Pos{2, 0}) })
	assert.Panics(t, func() { s.ToggleFlag(Pos{0, -1}) })
}
