package server

import (
	"github.com/matryer/way"
)

const URI_GAME = "/api/game"
const URI_WS = "/ws"

// Routes builds the router for all game endpoints
func (s *GameServer) Routes() *way.Router {
	router := way.NewRouter()
	router.HandleFunc("GET", URI_GAME, s.HandleGetGame())
	router.HandleFunc("POST", URI_GAME+"/reveal/:row/:col", s.HandleReveal())
	router.HandleFunc("POST", URI_GAME+"/flag/:row/:col", s.HandleFlag())
	router.HandleFunc("POST", URI_GAME+"/reset", s.HandleReset())
	router.HandleFunc("GET", URI_WS, s.HandleWebsocket())
	return router
}
