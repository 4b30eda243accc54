package protocol

import (
	"encoding/json"
	"fmt"
)

// Cmd represents a command.
// While a game waits for a follow-up, its phase is the command it expects next.
type Cmd int

const (
	Default Cmd = iota
	// primary moves
	Embed
	Imprison
	Play
	// single-actor follow-ups
	TakeFromPlayed
	CheckPlayerCards
	CheckEmbedCards
	PickPlayerPickCard
	MoveImprisonedCard
	PickFromEmbed
	ExchangeWithEmbed
	PickPlayer
	// interactive follow-ups
	ExchangeCard
	CheckPrisoner
	GiveToNext
	// engine only
	Sync
	Joined
	Left
	GameOver
	Error
)

var CmdNames = map[Cmd]string{
	Default:            "DEFAULT",
	Embed:              "EMBED",
	Imprison:           "IMPRISON",
	Play:               "PLAY",
	TakeFromPlayed:     "TAKE_FROM_PLAYED",
	CheckPlayerCards:   "CHECK_PLAYER_CARDS",
	CheckEmbedCards:    "CHECK_EMBED_CARDS",
	PickPlayerPickCard: "PICK_PLAYER_PICK_CARD",
	MoveImprisonedCard: "MOVE_IMPRISONED_CARD",
	PickFromEmbed:      "PICK_FROM_EMBED",
	ExchangeWithEmbed:  "EXCHANGE_WITH_EMBED",
	PickPlayer:         "PICK_PLAYER",
	ExchangeCard:       "EXCHANGE_CARD",
	CheckPrisoner:      "CHECK_PRISONER",
	GiveToNext:         "GIVE_TO_NEXT",
	Sync:               "SYNC",
	Joined:             "JOINED",
	Left:               "LEFT",
	GameOver:           "GAME_OVER",
	Error:              "ERROR",
}

var NameToCmd = map[string]Cmd{}

func init() {
	for cmd, name := range CmdNames {
		NameToCmd[name] = cmd
	}
}

func (c Cmd) String() string {
	if name, ok := CmdNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cmd(%d)", int(c))
}

// Interactive reports whether the command is submitted by several players at once
func (c Cmd) Interactive() bool {
	return c == ExchangeCard || c == CheckPrisoner || c == GiveToNext
}

func (c Cmd) MarshalJSON() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return json.Marshal(name)
}

func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cmd, ok := NameToCmd[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	*c = cmd
	return nil
}
