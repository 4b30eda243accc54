package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/fanren/deck"
	"github.com/minaorangina/fanren/protocol"
	"github.com/minaorangina/fanren/store"
	"github.com/stretchr/testify/require"
)

const wsTestTimeout = 2 * time.Second

// decoded is a response envelope with its data still raw
type decoded struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*GameServer, *store.InMemoryGameStore) {
	t.Helper()

	str := store.NewInMemoryGameStore()
	t.Cleanup(str.Stop)

	return NewServer(ServerOpts{Store: str, CheckWait: 100 * time.Millisecond}), str
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	require.NoError(t, err)

	return data
}

func do(t *testing.T, s http.Handler, method, path string, body []byte) (*httptest.ResponseRecorder, decoded) {
	t.Helper()

	request := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	response := httptest.NewRecorder()
	s.ServeHTTP(response, request)

	var got decoded
	if response.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
	}
	return response, got
}

func unmarshalData(t *testing.T, got decoded, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(got.Data, into))
}

func createGame(t *testing.T, s http.Handler, seats int) string {
	t.Helper()

	response, got := do(t, s, http.MethodPost, "/new", mustMakeJson(t, NewGameReq{Seats: seats}))
	require.Equal(t, http.StatusCreated, response.Code)

	var res NewGameRes
	unmarshalData(t, got, &res)
	return res.GameID
}

func joinGame(t *testing.T, s http.Handler, gameID string) JoinGameRes {
	t.Helper()

	response, got := do(t, s, http.MethodPost, "/join", mustMakeJson(t, JoinGameReq{GameID: gameID}))
	require.Equal(t, http.StatusOK, response.Code, got.Msg)

	var res JoinGameRes
	unmarshalData(t, got, &res)
	return res
}

// fullGame creates a game and fills every seat
func fullGame(t *testing.T, s http.Handler, seats int) (string, []string) {
	t.Helper()

	gameID := createGame(t, s, seats)
	playerIDs := []string{}
	for i := 0; i < seats; i++ {
		playerIDs = append(playerIDs, joinGame(t, s, gameID).PlayerID)
	}
	return gameID, playerIDs
}

func fullState(t *testing.T, s http.Handler, gameID string) protocol.GameState {
	t.Helper()

	response, got := do(t, s, http.MethodGet, "/game/"+gameID, nil)
	require.Equal(t, http.StatusOK, response.Code)

	var state protocol.GameState
	unmarshalData(t, got, &state)
	return state
}

// playable is an index into the current player's hand that is not the prisoner
func playable(t *testing.T, state protocol.GameState) (string, int) {
	t.Helper()

	for _, p := range state.Players {
		if p.PlayerID != state.CurrentPlayer {
			continue
		}
		for i, c := range p.Hand {
			if c.Name != deck.Prisoner {
				return p.PlayerID, i
			}
		}
	}
	t.Fatal("current player has nothing to embed")
	return "", 0
}

func wsURL(server *httptest.Server, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

func dial(t *testing.T, server *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(wsURL(server, gameID, playerID), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { ws.Close() })

	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(wsTestTimeout))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	var msg protocol.OutboundMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}
