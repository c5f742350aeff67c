package tty

import (
	"context"
	"fmt"
	"time"

	"github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"

	"minesweeper/mines"
)

// UI drives one session from terminal events. Run owns the session: events
// and timer ticks are applied from a single select loop.
type UI struct {
	session *mines.Session
	grid    Grid
	cursor  mines.Pos
	log     log.FieldLogger
	tick    time.Duration
}

func NewUI(session *mines.Session, logger log.FieldLogger) *UI {
	b := session.Board()
	return &UI{
		session: session,
		grid:    NewGrid(b.Rows(), b.Cols()),
		log:     logger,
		tick:    time.Second,
	}
}

// Apply runs one command against the session and reports whether the
// player asked to quit
func (u *UI) Apply(cmd Command, at mines.Pos, hasPos bool) (quit bool, err error) {
	if hasPos {
		u.cursor = at
	}
	switch cmd {
	case CmdUp, CmdDown, CmdLeft, CmdRight:
		u.cursor = Move(u.cursor, cmd, u.grid.Rows, u.grid.Cols)
	case CmdReveal:
		u.session.Reveal(u.cursor)
	case CmdFlag:
		u.session.ToggleFlag(u.cursor)
	case CmdReset:
		if err := u.session.Reset(); err != nil {
			return false, err
		}
	case CmdQuit:
		return true, nil
	}
	return false, nil
}

// Cursor is the cell keyboard actions apply to
func (u *UI) Cursor() mines.Pos {
	return u.cursor
}

// Run takes over the terminal until the player quits or ctx is done
func (u *UI) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox init: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				close(events)
				return
			}
			events <- ev
		}
	}()
	defer termbox.Interrupt()

	ticker := time.NewTicker(u.tick)
	defer ticker.Stop()

	u.log.Info("terminal ui started")
	for {
		if err := u.draw(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			u.session.Tick()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == termbox.EventError {
				return fmt.Errorf("termbox event: %w", ev.Err)
			}
			cmd, at, hasPos := Translate(ev, u.grid)
			quit, err := u.Apply(cmd, at, hasPos)
			if err != nil {
				return err
			}
			if quit {
				u.log.Info("terminal ui quit")
				return nil
			}
		}
	}
}

func (u *UI) draw() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	v := u.session.View()

	face := ":)"
	switch v.Outcome {
	case mines.Won:
		face = "B)"
	case mines.Lost:
		face = ":("
	}
	status := fmt.Sprintf("Mines %4d   %s   Time %4d", v.MinesRemaining, face, v.ElapsedSeconds)
	printAt(u.grid.Left, 0, status, termbox.ColorDefault|termbox.AttrBold)

	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			p := mines.Pos{Row: row, Col: col}
			g := GlyphFor(v.Cells[row][col])
			if p == u.cursor && !v.GameOver {
				g.Bg = termbox.ColorWhite
				g.Fg |= termbox.AttrReverse
			}
			x, y := u.grid.CellOrigin(p)
			termbox.SetCell(x, y, g.Ch, g.Fg, g.Bg)
		}
	}

	help := "arrows move  space reveal  f flag  r reset  q quit"
	if msg := v.Message(); msg != "" {
		help = msg + "  r new game  q quit"
	}
	printAt(u.grid.Left, u.grid.Top+v.Rows+1, help, termbox.ColorDefault)

	return termbox.Flush()
}

func printAt(x, y int, s string, fg termbox.Attribute) {
	for _, ch := range s {
		termbox.SetCell(x, y, ch, fg, termbox.ColorDefault)
		x++
	}
}
