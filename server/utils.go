package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/minaorangina/fanren/game"
	"github.com/minaorangina/fanren/protocol"
)

func writeJSON(w http.ResponseWriter, status int, msg string, data interface{}) {
	bytes, err := json.Marshal(protocol.Response{Code: status, Msg: msg, Data: data})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	if errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, string(game.CodeInvalidParams), "missing body")
		return
	}
	writeJSON(w, http.StatusBadRequest, string(game.CodeInvalidParams), err.Error())
}

func writeUnknownGame(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, CodeInvalidGameID, nil)
}

// gameAndPlayer reads the game_id and player_id query parameters
func gameAndPlayer(w http.ResponseWriter, r *http.Request) (gameID, playerID string, ok bool) {
	query := r.URL.Query()

	vals, ok := query["game_id"]
	if !ok || len(vals) != 1 || vals[0] == "" {
		writeJSON(w, http.StatusBadRequest, string(game.CodeInvalidParams), "missing game ID")
		return "", "", false
	}
	gameID = vals[0]

	vals, ok = query["player_id"]
	if !ok || len(vals) != 1 || vals[0] == "" {
		writeJSON(w, http.StatusBadRequest, string(game.CodeInvalidParams), "missing player ID")
		return "", "", false
	}
	playerID = vals[0]

	return gameID, playerID, true
}
