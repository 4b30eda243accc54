package engine

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/minaorangina/fanren/game"
	"github.com/minaorangina/fanren/journal"
	"github.com/minaorangina/fanren/protocol"
	"github.com/stretchr/testify/require"

	utils "github.com/minaorangina/fanren/internal"
)

const gameEngineTestTimeout = 500 * time.Millisecond

// TestPlayer records everything it is sent
type TestPlayer struct {
	id       string
	received chan protocol.OutboundMessage
}

func NewTestPlayer(id string) *TestPlayer {
	return &TestPlayer{id: id, received: make(chan protocol.OutboundMessage, 64)}
}

func (tp *TestPlayer) ID() string {
	return tp.id
}

func (tp *TestPlayer) Send(msg protocol.OutboundMessage) error {
	select {
	case tp.received <- msg:
		return nil
	default:
		return ErrSlowPlayer
	}
}

// next waits for the next message
func (tp *TestPlayer) next(t *testing.T) protocol.OutboundMessage {
	t.Helper()

	var msg protocol.OutboundMessage
	var ok bool
	utils.Within(t, gameEngineTestTimeout, func() {
		msg, ok = <-tp.received
	})
	require.True(t, ok, "%s received nothing", tp.id)

	return msg
}

// drain discards everything received so far
func (tp *TestPlayer) drain() {
	for {
		select {
		case <-tp.received:
		default:
			return
		}
	}
}

// SpyJournal collects recorded entries
type SpyJournal struct {
	entries chan journal.Entry
}

func NewSpyJournal() *SpyJournal {
	return &SpyJournal{entries: make(chan journal.Entry, 64)}
}

func (j *SpyJournal) Record(entry journal.Entry) {
	j.entries <- entry
}

func ids(n int) []string {
	out := []string{}
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("p%d", i))
	}
	return out
}

// engineWithGame starts an engine over g and stops it when the test ends
func engineWithGame(t *testing.T, g *game.Game, j Journal) *GameEngine {
	t.Helper()

	ge, err := NewGameEngine(GameEngineOpts{GameID: "the-game", Game: g, Journal: j})
	require.NoError(t, err)
	t.Cleanup(ge.Stop)

	return ge
}

// newLobby is an empty game with the given number of seats
func newLobby(t *testing.T, seats int, checkWait time.Duration) *game.Game {
	t.Helper()

	g, err := game.New(game.Opts{Seats: seats, Rand: rand.New(rand.NewSource(1)), CheckWait: checkWait})
	require.NoError(t, err)

	return g
}
