package game

import (
	"github.com/minaorangina/fanren/deck"
	"github.com/minaorangina/fanren/protocol"
)

// FullState is the spectator view: everything, including hidden cards
func (g *Game) FullState() (protocol.GameState, error) {
	winners, err := g.Winners()
	if err != nil {
		return protocol.GameState{}, err
	}

	players := make([]protocol.Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, buildPlayer(p))
	}

	state := protocol.GameState{
		Seats:         g.Seats,
		Players:       players,
		Played:        copyHoldings(g.Played),
		Embedded:      copyHoldings(g.Embedded),
		CurrentPlayer: g.CurrentPlayer(),
		Phase:         g.Phase,
		Target:        g.Target,
		Interaction:   g.buildInteraction(),
		Started:       g.Started,
		Finished:      g.Finished,
		Aborted:       g.Aborted,
		Winners:       winners,
	}
	if g.Jump != nil {
		state.Jump = &protocol.Jump{PlayerID: g.Jump.PlayerID, Phase: g.Jump.Phase}
	}

	return state, nil
}

// PersonalState is what one player may see
func (g *Game) PersonalState(playerID string) (protocol.PersonalState, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return protocol.PersonalState{}, err
	}
	winners, err := g.Winners()
	if err != nil {
		return protocol.PersonalState{}, err
	}

	embedOwners := make([]string, 0, len(g.Embedded))
	for _, h := range g.Embedded {
		embedOwners = append(embedOwners, h.PlayerID)
	}

	return protocol.PersonalState{
		Seats:         g.Seats,
		Me:            buildPlayer(p),
		Opponents:     g.buildOpponents(playerID),
		Played:        copyHoldings(g.Played),
		EmbedOwners:   embedOwners,
		CurrentPlayer: g.CurrentPlayer(),
		Phase:         g.Phase,
		Interaction:   g.buildPersonalInteraction(playerID),
		Started:       g.Started,
		Finished:      g.Finished,
		Winners:       winners,
	}, nil
}

// BuildMessages builds one message per player carrying their own view
func (g *Game) BuildMessages(cmd protocol.Cmd, text string) ([]protocol.OutboundMessage, error) {
	msgs := make([]protocol.OutboundMessage, 0, len(g.Players))
	for _, p := range g.Players {
		state, err := g.PersonalState(p.ID)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, protocol.OutboundMessage{
			PlayerID: p.ID,
			Command:  cmd,
			Code:     200,
			Message:  text,
			State:    &state,
		})
	}
	return msgs, nil
}

func buildPlayer(p *Player) protocol.Player {
	checkedHands := make(map[string][]deck.Card, len(p.CheckedHands))
	for id, cards := range p.CheckedHands {
		checkedHands[id] = copyCards(cards)
	}

	return protocol.Player{
		PlayerID:       p.ID,
		Hand:           copyCards(p.Hand),
		Imprisoned:     copyHoldings(p.Imprisoned),
		CheckedHands:   checkedHands,
		CheckedEmbed:   copyHoldings(p.CheckedEmbed),
		CheckedPlayers: append([]string{}, p.CheckedPlayers...),
	}
}

func (g *Game) buildOpponents(playerID string) []protocol.Opponent {
	opponents := []protocol.Opponent{}

	for _, p := range g.Players {
		if p.ID == playerID {
			continue
		}
		imprisoned := make([]deck.Role, 0, len(p.Imprisoned))
		for _, h := range p.Imprisoned {
			imprisoned = append(imprisoned, h.Card.Name)
		}
		opponents = append(opponents, protocol.Opponent{
			PlayerID:   p.ID,
			HandCount:  len(p.Hand),
			Imprisoned: imprisoned,
		})
	}

	return opponents
}

func (g *Game) buildInteraction() *protocol.Interaction {
	c := g.Interaction
	if c == nil {
		return nil
	}

	summary := &protocol.Interaction{
		Phase:     c.Phase,
		Eligible:  append([]string(nil), c.Eligible...),
		Submitted: c.Submitted(),
		Required:  c.Required,
	}
	if c.Readiness == ByTime {
		deadline := c.Deadline()
		summary.Deadline = &deadline
	}

	return summary
}

// buildPersonalInteraction hides who answered a time-based check, since only
// holders of a hidden role may answer. A player still sees their own answer.
func (g *Game) buildPersonalInteraction(playerID string) *protocol.Interaction {
	summary := g.buildInteraction()
	if summary == nil || g.Interaction.Readiness != ByTime {
		return summary
	}

	summary.Submitted = []string{}
	if _, ok := g.Interaction.Submissions[playerID]; ok {
		summary.Submitted = append(summary.Submitted, playerID)
	}

	return summary
}
