package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"minesweeper/mines"
)

// GameServer owns one session. Only Loop touches it; handlers talk to Loop
// through channels.
type GameServer struct {
	session      *mines.Session
	subscribers  map[*subscriber]struct{}
	GameRequests chan GameRequest
	subscribe    chan *subscriber
	unsubscribe  chan *subscriber
	Upgrader     *websocket.Upgrader
	log          log.FieldLogger
	tickInterval time.Duration
	timeout      time.Duration
}

type Option func(*GameServer)

// WithTickInterval sets how often the game timer advances
func WithTickInterval(d time.Duration) Option {
	return func(s *GameServer) { s.tickInterval = d }
}

// WithTimeout sets how long a handler waits on the loop
func WithTimeout(d time.Duration) Option {
	return func(s *GameServer) { s.timeout = d }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(s *GameServer) { s.log = logger }
}

func NewGameServer(session *mines.Session, opts ...Option) *GameServer {
	s := &GameServer{
		session:      session,
		subscribers:  make(map[*subscriber]struct{}),
		GameRequests: make(chan GameRequest),
		subscribe:    make(chan *subscriber),
		unsubscribe:  make(chan *subscriber),
		Upgrader:     &websocket.Upgrader{},
		log:          log.StandardLogger(),
		tickInterval: time.Second,
		timeout:      200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loop applies requests and timer ticks one at a time until ctx is done
func (s *GameServer) Loop(ctx context.Context) {
	s.log.Info("GameServer.Loop starting")
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("GameServer.Loop stopped")
			return
		case req := <-s.GameRequests:
			reply := s.apply(req)
			req.Replies <- reply
			if reply.Changed {
				s.broadcast(ServerMessage{View: reply.View})
			}
		case <-ticker.C:
			if s.session.Tick() {
				s.broadcast(ServerMessage{View: s.session.View()})
			}
		case sub := <-s.subscribe:
			s.subscribers[sub] = struct{}{}
			sub.MessagesToSend <- ServerMessage{View: s.session.View()}
			s.log.WithField("subscribers", len(s.subscribers)).Debug("subscriber added")
		case sub := <-s.unsubscribe:
			delete(s.subscribers, sub)
			s.log.WithField("subscribers", len(s.subscribers)).Debug("subscriber removed")
		}
	}
}

func (s *GameServer) apply(req GameRequest) GameReply {
	var reply GameReply
	switch req.Action {
	case ACTION_VIEW:
	case ACTION_REVEAL, ACTION_FLAG:
		if !s.session.Board().InBounds(req.Pos) {
			reply.Err = mines.ErrOutOfBounds
			break
		}
		if req.Action == ACTION_REVEAL {
			// Even a no-op reveal can start the timer
			reply.Revealed = s.session.Reveal(req.Pos)
			reply.Changed = true
		} else {
			reply.Changed = s.session.ToggleFlag(req.Pos)
		}
	case ACTION_RESET:
		if err := s.session.Reset(); err != nil {
			reply.Err = err
			break
		}
		reply.Changed = true
	}
	reply.View = s.session.View()
	return reply
}

// broadcast never blocks the loop; slow subscribers lose messages
func (s *GameServer) broadcast(msg ServerMessage) {
	for sub := range s.subscribers {
		select {
		case sub.MessagesToSend <- msg:
		default:
			s.log.Warn("dropping message, subscriber queue full")
		}
	}
}

// Do hands a request to the loop and waits for its reply
func (s *GameServer) Do(ctx context.Context, action Action, p mines.Pos) (GameReply, int) {
	replies := make(chan GameReply, 1)
	select {
	case s.GameRequests <- GameRequest{Action: action, Pos: p, Replies: replies}:
	case <-ctx.Done():
		return GameReply{Err: ctx.Err()}, HTTP_TIMEOUT
	case <-time.After(s.timeout):
		s.log.WithField("action", action.Name()).Warn("GameRequests TIMEOUTED")
		return GameReply{Err: context.DeadlineExceeded}, HTTP_TIMEOUT
	}

	select {
	case reply := <-replies:
		switch {
		case errors.Is(reply.Err, mines.ErrOutOfBounds):
			return reply, HTTP_BAD_REQUEST
		case reply.Err != nil:
			return reply, HTTP_SERVER_ERR
		}
		return reply, HTTP_SUCCESS
	case <-time.After(s.timeout):
		s.log.WithField("action", action.Name()).Warn("GameReply TIMEOUTED")
		return GameReply{Err: context.DeadlineExceeded}, HTTP_SERVER_ERR
	}
}

func (s *GameServer) HandleGetGame() http.HandlerFunc {
	return s.handleAction(ACTION_VIEW)
}

func (s *GameServer) HandleReveal() http.HandlerFunc {
	return s.handleAction(ACTION_REVEAL)
}

func (s *GameServer) HandleFlag() http.HandlerFunc {
	return s.handleAction(ACTION_FLAG)
}

func (s *GameServer) HandleReset() http.HandlerFunc {
	return s.handleAction(ACTION_RESET)
}

func (s *GameServer) handleAction(action Action) http.HandlerFunc {
	needsPos := action == ACTION_REVEAL || action == ACTION_FLAG
	return func(w http.ResponseWriter, r *http.Request) {
		var p mines.Pos
		if needsPos {
			var err error
			p, err = posParams(r.Context())
			if err != nil {
				writeError(w, HTTP_BAD_REQUEST, err)
				return
			}
		}

		reply, code := s.Do(r.Context(), action, p)
		if reply.Err != nil {
			writeError(w, code, reply.Err)
			return
		}
		writeJSON(w, code, reply)
	}
}

func posParams(ctx context.Context) (mines.Pos, error) {
	row, err := strconv.Atoi(way.Param(ctx, "row"))
	if err != nil {
		return mines.Pos{}, err
	}
	col, err := strconv.Atoi(way.Param(ctx, "col"))
	if err != nil {
		return mines.Pos{}, err
	}
	return mines.Pos{Row: row, Col: col}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON encode %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// HandleWebsocket pushes the view after every change and lets the client
// send actions as ClientMessage JSON
func (s *GameServer) HandleWebsocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client
			s.log.Warnf("HandleWebsocket upgrade err %v", err)
			return
		}
		defer conn.Close()

		sub := &subscriber{MessagesToSend: make(chan ServerMessage, 16)}
		select {
		case s.subscribe <- sub:
		case <-time.After(s.timeout):
			s.log.Warn("subscribe TIMEOUTED")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer func() {
			cancel()
			select {
			case s.unsubscribe <- sub:
			case <-time.After(s.timeout):
			}
		}()

		go s.loopRead(ctx, cancel, conn, sub)
		s.loopWrite(ctx, conn, sub)
	}
}

func (s *GameServer) loopRead(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, sub *subscriber) {
	defer cancel()
	for {
		var cm ClientMessage
		if err := conn.ReadJSON(&cm); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warnf("loopRead err reading message %v", err)
			}
			return
		}

		action, ok := ParseAction(cm.Action)
		if !ok {
			s.sendError(sub, "unknown action "+strconv.Quote(cm.Action))
			continue
		}
		reply, _ := s.Do(ctx, action, mines.Pos{Row: cm.Row, Col: cm.Col})
		if reply.Err != nil {
			s.sendError(sub, reply.Err.Error())
		} else if !reply.Changed {
			// Changes reach every subscriber through broadcast already
			s.send(sub, ServerMessage{View: reply.View})
		}
	}
}

func (s *GameServer) sendError(sub *subscriber, msg string) {
	s.send(sub, ServerMessage{Error: msg})
}

func (s *GameServer) send(sub *subscriber, msg ServerMessage) {
	select {
	case sub.MessagesToSend <- msg:
	default:
		s.log.Warn("dropping message, subscriber queue full")
	}
}

// loopWrite is the only writer on conn
func (s *GameServer) loopWrite(ctx context.Context, conn *websocket.Conn, sub *subscriber) {
	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case msg := <-sub.MessagesToSend:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				s.log.Warnf("loopWrite cant write %v", err)
				return
			}
		}
	}
}
