package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/minaorangina/fanren/deck"
	"github.com/minaorangina/fanren/protocol"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

func cards(roles ...deck.Role) []deck.Card {
	cs := []deck.Card{}
	for _, r := range roles {
		cs = append(cs, deck.NewCard(r))
	}
	return cs
}

func held(playerID string, roles ...deck.Role) []deck.Holding {
	hs := []deck.Holding{}
	for _, r := range roles {
		hs = append(hs, deck.Holding{PlayerID: playerID, Card: deck.NewCard(r)})
	}
	return hs
}

// table seats p1, p2, ... holding the given hands
func table(hands ...[]deck.Card) []*Player {
	ps := []*Player{}
	for i, h := range hands {
		ps = append(ps, NewPlayer(fmt.Sprintf("p%d", i+1), h...))
	}
	return ps
}

// fakeClock is a clock the test moves by hand
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// inPlay builds a started game from the given players
func inPlay(players []*Player, opts Opts) *Game {
	opts.Players = players
	opts.Started = true
	if opts.Clock == nil {
		clock := &fakeClock{now: epoch}
		opts.Clock = clock.Now
	}
	return Existing(opts)
}

func joinedGame(t *testing.T, seats int) *Game {
	t.Helper()

	g, err := New(Opts{Seats: seats})
	require.NoError(t, err)
	for i := 0; i < seats; i++ {
		require.NoError(t, g.AddPlayer(fmt.Sprintf("p%d", i+1)))
	}
	return g
}

// allCards counts every card on the table, wherever it is
func allCards(g *Game) map[deck.Role]int {
	counts := map[deck.Role]int{}
	for _, p := range g.Players {
		for _, c := range p.Hand {
			counts[c.Name]++
		}
		for _, h := range p.Imprisoned {
			counts[h.Card.Name]++
		}
	}
	for _, h := range g.Played {
		counts[h.Card.Name]++
	}
	for _, h := range g.Embedded {
		counts[h.Card.Name]++
	}
	return counts
}

func deckCounts(t *testing.T, seats int) map[deck.Role]int {
	t.Helper()

	d, err := deck.New(seats)
	require.NoError(t, err)
	counts := map[deck.Role]int{}
	for _, c := range d {
		counts[c.Name]++
	}
	return counts
}

func snapshot(t *testing.T, g *Game) protocol.GameState {
	t.Helper()

	state, err := g.FullState()
	require.NoError(t, err)
	return state
}

func move(playerID string, cmd protocol.Cmd, targets []string, decision ...int) protocol.InboundMessage {
	return protocol.InboundMessage{PlayerID: playerID, Command: cmd, Targets: targets, Decision: decision}
}
