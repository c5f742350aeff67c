// Package tty plays minesweeper in a terminal through termbox.
package tty

import (
	"github.com/nsf/termbox-go"

	"minesweeper/mines"
)

// Command is a player intent decoded from a terminal event
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdReveal // at the cursor, or at Pos for mouse clicks
	CmdFlag
	CmdReset
	CmdQuit
)

// Translate decodes one termbox event. Mouse clicks on the board also return
// the clicked cell and move the cursor there.
func Translate(ev termbox.Event, g Grid) (Command, mines.Pos, bool) {
	switch ev.Type {
	case termbox.EventKey:
		return translateKey(ev), mines.Pos{}, false
	case termbox.EventMouse:
		p, ok := g.ScreenToCell(ev.MouseX, ev.MouseY)
		if !ok {
			return CmdNone, mines.Pos{}, false
		}
		switch ev.Key {
		case termbox.MouseLeft:
			return CmdReveal, p, true
		case termbox.MouseRight:
			return CmdFlag, p, true
		}
	}
	return CmdNone, mines.Pos{}, false
}

func translateKey(ev termbox.Event) Command {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return CmdUp
	case termbox.KeyArrowDown:
		return CmdDown
	case termbox.KeyArrowLeft:
		return CmdLeft
	case termbox.KeyArrowRight:
		return CmdRight
	case termbox.KeySpace, termbox.KeyEnter:
		return CmdReveal
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return CmdQuit
	case termbox.KeyF2:
		return CmdReset
	}

	switch ev.Ch {
	case 'k', 'w':
		return CmdUp
	case 'j', 's':
		return CmdDown
	case 'h', 'a':
		return CmdLeft
	case 'l', 'd':
		return CmdRight
	case 'f':
		return CmdFlag
	case 'r':
		return CmdReset
	case 'q':
		return CmdQuit
	}
	return CmdNone
}

// Move returns the cursor after a movement command, clamped to the board
func Move(cursor mines.Pos, cmd Command, rows, cols int) mines.Pos {
	switch cmd {
	case CmdUp:
		cursor.Row--
	case CmdDown:
		cursor.Row++
	case CmdLeft:
		cursor.Col--
	case CmdRight:
		cursor.Col++
	}
	cursor.Row = max(0, min(cursor.Row, rows-1))
	cursor.Col = max(0, min(cursor.Col, cols-1))
	return cursor
}
