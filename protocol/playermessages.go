package protocol

import (
	"time"

	"github.com/minaorangina/fanren/deck"
)

// InboundMessage is a move from a player to the game
type InboundMessage struct {
	PlayerID string   `json:"player_id"`
	Command  Cmd      `json:"command"`
	Targets  []string `json:"targets,omitempty"`
	Decision []int    `json:"decision,omitempty"`
}

// OutboundMessage is pushed from the game engine to a player
type OutboundMessage struct {
	PlayerID string         `json:"player_id"`
	Command  Cmd            `json:"command"`
	Code     int            `json:"code"`
	Message  string         `json:"message,omitempty"`
	State    *PersonalState `json:"state,omitempty"`
}

// Response is the envelope for every HTTP response
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Player is the full record of one seat
type Player struct {
	PlayerID       string                 `json:"player_id"`
	Hand           []deck.Card            `json:"hand"`
	Imprisoned     []deck.Holding         `json:"imprisoned"`
	CheckedHands   map[string][]deck.Card `json:"checked_hands"`
	CheckedEmbed   []deck.Holding         `json:"checked_embed"`
	CheckedPlayers []string               `json:"checked_players"`
}

// Opponent is what a player may know about another seat
type Opponent struct {
	PlayerID   string      `json:"player_id"`
	HandCount  int         `json:"hand_count"`
	Imprisoned []deck.Role `json:"imprisoned"`
}

// Interaction summarises an open multi-player phase
type Interaction struct {
	Phase     Cmd        `json:"phase"`
	Eligible  []string   `json:"eligible,omitempty"`
	Submitted []string   `json:"submitted"`
	Required  int        `json:"required,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`
}

// Jump is a phase waiting for a seat's next turn
type Jump struct {
	PlayerID string `json:"player_id"`
	Phase    Cmd    `json:"phase"`
}

// GameState is the spectator view of a game
type GameState struct {
	Seats         int            `json:"seats"`
	Players       []Player       `json:"players"`
	Played        []deck.Holding `json:"played"`
	Embedded      []deck.Holding `json:"embedded"`
	CurrentPlayer string         `json:"current_player"`
	Phase         Cmd            `json:"phase"`
	Target        string         `json:"target,omitempty"`
	Jump          *Jump          `json:"jump,omitempty"`
	Interaction   *Interaction   `json:"interaction,omitempty"`
	Started       bool           `json:"started"`
	Finished      bool           `json:"finished"`
	Aborted       bool           `json:"aborted"`
	Winners       []string       `json:"winners"`
}

// PersonalState is one player's view of a game
type PersonalState struct {
	Seats         int            `json:"seats"`
	Me            Player         `json:"me"`
	Opponents     []Opponent     `json:"opponents"`
	Played        []deck.Holding `json:"played"`
	EmbedOwners   []string       `json:"embed_owners"`
	CurrentPlayer string         `json:"current_player"`
	Phase         Cmd            `json:"phase"`
	Interaction   *Interaction   `json:"interaction,omitempty"`
	Started       bool           `json:"started"`
	Finished      bool           `json:"finished"`
	Winners       []string       `json:"winners"`
}
