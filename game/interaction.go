package game

import (
	"time"

	"github.com/minaorangina/fanren/deck"
	"github.com/minaorangina/fanren/protocol"
)

const (
	exchangeParties = 2
	maxPassers      = 4
)

// Readiness decides when a collector can be resolved
type Readiness int

const (
	ByCount Readiness = iota
	ByTime
)

// Collector gathers one submission per player for a multi-player phase
type Collector struct {
	Phase     protocol.Cmd
	Readiness Readiness
	// Round identifies this collection; it changes whenever a collector opens
	Round int

	// Eligible is who may submit; nil when eligibility is checked per submission
	Eligible []string
	Required int

	StartedAt time.Time
	Wait      time.Duration

	Submissions map[string]int
	Order       []string
	Count       int
}

// Submitted lists who has submitted, in order of first submission
func (c *Collector) Submitted() []string {
	return append([]string{}, c.Order...)
}

// Deadline is when a time-based collector becomes ready
func (c *Collector) Deadline() time.Time {
	return c.StartedAt.Add(c.Wait)
}

func (c *Collector) ready(now time.Time) bool {
	switch c.Readiness {
	case ByTime:
		return !now.Before(c.Deadline())
	default:
		return len(c.Submissions) >= c.Required
	}
}

func (c *Collector) record(playerID string, index int) {
	if _, ok := c.Submissions[playerID]; !ok {
		c.Order = append(c.Order, playerID)
	}
	c.Submissions[playerID] = index
	c.Count++
}

// passers are the players allowed to pass a card on
func (g *Game) passers() []string {
	ids := []string{}
	for _, p := range g.Players {
		if p.active() {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// openInteraction starts collecting for an interactive phase
func (g *Game) openInteraction(phase protocol.Cmd) {
	c := &Collector{
		Phase:       phase,
		StartedAt:   g.clock(),
		Submissions: map[string]int{},
		Order:       []string{},
	}

	switch phase {
	case protocol.ExchangeCard:
		c.Eligible = []string{g.current().ID, g.Target}
		c.Required = exchangeParties
	case protocol.GiveToNext:
		c.Eligible = g.passers()
		c.Required = len(c.Eligible)
		if c.Required > maxPassers {
			c.Required = maxPassers
		}
	case protocol.CheckPrisoner:
		c.Readiness = ByTime
		c.Wait = g.checkWait
	default:
		return
	}

	g.rounds++
	c.Round = g.rounds
	g.Interaction = c
}

// Collect records a player's submission for the open interactive phase.
// A later submission from the same player replaces the earlier one.
func (g *Game) Collect(playerID string, decision []int) error {
	if err := g.inProgress(); err != nil {
		return err
	}
	c := g.Interaction
	if c == nil {
		return invalidMove("no interaction is open")
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}

	index := -1
	switch c.Phase {
	case protocol.ExchangeCard, protocol.GiveToNext:
		if !containsString(c.Eligible, playerID) {
			return invalidMove("%s is not part of %s", playerID, c.Phase)
		}
		if len(decision) != 1 {
			return errorf(CodeInvalidParams, "%s takes one card index", c.Phase)
		}
		index = decision[0]
		if !p.validCard(index) {
			return invalidMove("no card at index %d", index)
		}
	case protocol.CheckPrisoner:
		if p == g.current() {
			return invalidMove("the checking player cannot answer")
		}
		if !p.holds(deck.Prisoner, deck.Outsider) {
			return invalidMove("%s holds neither %s nor %s", playerID, deck.Prisoner, deck.Outsider)
		}
	}

	c.record(playerID, index)

	return nil
}

// InteractionReady reports whether the open interaction can be resolved
func (g *Game) InteractionReady(now time.Time) bool {
	if g.Interaction == nil {
		return false
	}
	return g.Interaction.ready(now)
}

// ResolveInteraction carries out the collected submissions.
// If any submission no longer holds, nothing changes and collection starts over.
func (g *Game) ResolveInteraction() error {
	if err := g.inProgress(); err != nil {
		return err
	}
	c := g.Interaction
	if c == nil {
		return invalidMove("no interaction is open")
	}

	var err error
	switch c.Phase {
	case protocol.ExchangeCard:
		err = g.resolveExchange(c)
	case protocol.GiveToNext:
		err = g.resolveGiveToNext(c)
	case protocol.CheckPrisoner:
		err = g.resolveCheckPrisoner(c)
	default:
		err = invalidMove("%s is not interactive", c.Phase)
	}
	if err != nil {
		g.openInteraction(c.Phase)
		return err
	}

	g.endAction()

	return nil
}

func (g *Game) resolveExchange(c *Collector) error {
	if len(c.Submissions) != exchangeParties {
		return invalidMove("exchange needs both players")
	}

	a, err := g.Player(c.Eligible[0])
	if err != nil {
		return err
	}
	b, err := g.Player(c.Eligible[1])
	if err != nil {
		return err
	}
	ai, bi := c.Submissions[a.ID], c.Submissions[b.ID]
	if !a.validCard(ai) || !b.validCard(bi) {
		return invalidMove("exchange index is stale")
	}

	a.Hand[ai], b.Hand[bi] = b.Hand[bi], a.Hand[ai]

	return nil
}

// every submitter hands one card to the next seat at the same time
func (g *Game) resolveGiveToNext(c *Collector) error {
	givers := make([]*Player, 0, len(c.Order))
	for _, id := range c.Order {
		p, err := g.Player(id)
		if err != nil {
			return err
		}
		if !p.validCard(c.Submissions[id]) {
			return invalidMove("pass index for %s is stale", id)
		}
		givers = append(givers, p)
	}

	passed := make([]deck.Card, len(givers))
	for i, p := range givers {
		passed[i] = p.takeCard(c.Submissions[p.ID])
	}
	for i, p := range givers {
		seat := g.seats[p.ID]
		next := g.Players[(seat+1)%len(g.Players)]
		next.Hand = append(next.Hand, passed[i])
	}

	return nil
}

func (g *Game) resolveCheckPrisoner(c *Collector) error {
	checker := g.current()
	for _, id := range c.Order {
		p, err := g.Player(id)
		if err != nil {
			return err
		}
		if p == checker || !p.holds(deck.Prisoner, deck.Outsider) {
			return invalidMove("%s cannot answer the check", id)
		}
	}

	for _, id := range c.Order {
		if !checker.hasChecked(id) {
			checker.CheckedPlayers = append(checker.CheckedPlayers, id)
		}
	}

	return nil
}
