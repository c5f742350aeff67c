// Package server exposes a minesweeper session over HTTP and websockets.
package server

import (
	"fmt"

	"minesweeper/mines"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type Action int

const (
	ACTION_VIEW Action = iota
	ACTION_REVEAL
	ACTION_FLAG
	ACTION_RESET
)

func (a Action) Name() string {
	switch a {
	case ACTION_VIEW:
		return "view"
	case ACTION_REVEAL:
		return "reveal"
	case ACTION_FLAG:
		return "flag"
	case ACTION_RESET:
		return "reset"
	default:
		return fmt.Sprintf("n/a:%d", a)
	}
}

// ParseAction maps a client message action name to an Action
func ParseAction(name string) (Action, bool) {
	for _, a := range []Action{ACTION_VIEW, ACTION_REVEAL, ACTION_FLAG, ACTION_RESET} {
		if a.Name() == name {
			return a, true
		}
	}
	return 0, false
}

// GameRequest is one action handed to the loop goroutine
type GameRequest struct {
	Action  Action
	Pos     mines.Pos
	Replies chan GameReply
}

// GameReply is what the loop sends back after applying a request
type GameReply struct {
	View     mines.View  `json:"view"`
	Revealed []mines.Pos `json:"revealed,omitempty"`
	Changed  bool        `json:"changed"`
	Err      error       `json:"-"`
}

// ClientMessage is a command received over the websocket
type ClientMessage struct {
	Action string `json:"action"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// ServerMessage is pushed to every websocket subscriber
type ServerMessage struct {
	View  mines.View `json:"view"`
	Error string     `json:"error,omitempty"`
}

type subscriber struct {
	MessagesToSend chan ServerMessage
}
