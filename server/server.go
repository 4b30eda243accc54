package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/fanren/engine"
	"github.com/minaorangina/fanren/game"
	"github.com/minaorangina/fanren/internal/logging"
	"github.com/minaorangina/fanren/protocol"
	"github.com/minaorangina/fanren/store"
	"go.uber.org/zap"
)

const CodeInvalidGameID = "INVALID_GAME_ID"

type NewGameReq struct {
	Seats int `json:"seats"`
}

type NewGameRes struct {
	GameID string `json:"game_id"`
	Seats  int    `json:"seats"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
}

type JoinGameRes struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Started  bool   `json:"started"`
}

type ServerOpts struct {
	Store          store.GameStore
	Journal        engine.Journal
	CheckWait      time.Duration
	AllowedOrigins []string
	Logger         *zap.Logger
}

// GameServer is a game server
type GameServer struct {
	store     store.GameStore
	journal   engine.Journal
	checkWait time.Duration
	origins   []string
	upgrader  websocket.Upgrader
	log       *zap.Logger
	http.Server
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		store:     opts.Store,
		journal:   opts.Journal,
		checkWait: opts.CheckWait,
		origins:   opts.AllowedOrigins,
		log:       opts.Logger,
	}
	if s.store == nil {
		s.store = store.NewInMemoryGameStore()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := http.NewServeMux()

	router.Handle("/health", http.HandlerFunc(s.HandleHealth))
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/games", http.HandlerFunc(s.HandleListGames))
	router.Handle("/game/", http.HandlerFunc(s.HandleFindGame))
	router.Handle("/join", http.HandlerFunc(s.HandleJoinGame))
	router.Handle("/move", http.HandlerFunc(s.HandleMove))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.log)),
		handlers.PrintRecoveryStack(true),
	)

	s.Handler = handlers.LoggingHandler(logging.Writer(s.log), recovery(cors(router)))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, "ok", nil)
}

// HandleNewGame opens a lobby with the requested number of seats
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	gm, err := game.New(game.Opts{Seats: data.Seats, CheckWait: g.checkWait})
	if err != nil {
		g.writeError(w, err)
		return
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:  engine.NewID(),
		Game:    gm,
		Journal: g.journal,
		Logger:  g.log,
	})
	if err != nil {
		g.writeError(w, err)
		return
	}

	if err := g.store.AddGame(ge); err != nil {
		ge.Stop()
		g.writeError(w, err)
		return
	}
	g.log.Info("game created", zap.String("game_id", ge.ID()), zap.Int("seats", data.Seats))

	writeJSON(w, http.StatusCreated, "ok", NewGameRes{GameID: ge.ID(), Seats: data.Seats})
}

func (g *GameServer) HandleListGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, "ok", g.store.Games())
}

// HandleFindGame returns the full state of a game, for spectators
func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		writeJSON(w, http.StatusBadRequest, string(game.CodeInvalidParams), nil)
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeUnknownGame(w)
		return
	}

	state, err := ge.FullState()
	if err != nil {
		g.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "ok", state)
}

// HandleJoinGame seats a new player. Filling the last seat starts the game.
func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	if data.GameID == "" {
		writeJSON(w, http.StatusBadRequest, string(game.CodeInvalidParams), nil)
		return
	}

	ge := g.store.FindGame(data.GameID)
	if ge == nil {
		writeUnknownGame(w)
		return
	}

	playerID := engine.NewID()
	started, err := ge.Join(playerID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "ok", JoinGameRes{
		GameID:   data.GameID,
		PlayerID: playerID,
		Started:  started,
	})
}

// HandleMove applies one move and returns the mover's view
func (g *GameServer) HandleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID, playerID, ok := gameAndPlayer(w, r)
	if !ok {
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeUnknownGame(w)
		return
	}

	var msg protocol.InboundMessage
	err := json.NewDecoder(r.Body).Decode(&msg)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}
	msg.PlayerID = playerID

	state, err := ge.Receive(msg)
	if err != nil {
		g.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "ok", state)
}

// HandleWS connects a seated player over a websocket
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID, playerID, ok := gameAndPlayer(w, r)
	if !ok {
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeUnknownGame(w)
		return
	}

	if _, err := ge.PersonalState(playerID); err != nil {
		g.writeError(w, err)
		return
	}

	rawConn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.log.Warn("could not upgrade to websocket", zap.Error(err))
		return
	}

	if _, err := engine.NewWSPlayer(playerID, rawConn, ge, g.log.With(zap.String("game_id", gameID))); err != nil {
		g.log.Warn("could not connect player", zap.String("player_id", playerID), zap.Error(err))
		rawConn.Close()
	}
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range g.origins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func (g *GameServer) writeError(w http.ResponseWriter, err error) {
	code, msg := engine.ErrorStatus(err)
	if code == http.StatusInternalServerError {
		g.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, code, msg, nil)
}
