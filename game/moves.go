package game

import (
	"github.com/minaorangina/fanren/deck"
	"github.com/minaorangina/fanren/protocol"
)

// effects maps a played role to the follow-up it triggers
var effects = map[deck.Role]protocol.Cmd{
	deck.StudentPresident:  protocol.CheckPrisoner,
	deck.HealthMonitor:     protocol.TakeFromPlayed,
	deck.DisciplineMonitor: protocol.CheckPlayerCards,
	deck.Heiress:           protocol.PickPlayerPickCard,
	deck.Reporter:          protocol.GiveToNext,
	deck.ClassMonitor:      protocol.PickPlayer,
	deck.HonorStudent:      protocol.CheckEmbedCards,
	deck.Accomplice:        protocol.MoveImprisonedCard,
	deck.Infector:          protocol.PickFromEmbed,
	deck.GoHomeClub:        protocol.ExchangeWithEmbed,
}

// Effect returns the follow-up a role triggers when played
func Effect(r deck.Role) (protocol.Cmd, bool) {
	cmd, ok := effects[r]
	return cmd, ok
}

// possible reports whether a follow-up could be carried out at all
func (g *Game) possible(phase protocol.Cmd) bool {
	switch phase {
	case protocol.PickFromEmbed, protocol.ExchangeWithEmbed:
		return len(g.Embedded) > 0
	case protocol.MoveImprisonedCard:
		for _, p := range g.Players {
			if len(p.Imprisoned) > 0 {
				return true
			}
		}
		return false
	case protocol.GiveToNext:
		return len(g.passers()) > 0
	}
	return true
}

// primaryCard validates a card chosen for embed, imprison or play
func (g *Game) primaryCard(cindex int) (*Player, error) {
	if err := g.expect(protocol.Default); err != nil {
		return nil, err
	}

	p := g.current()
	if !p.validCard(cindex) {
		return nil, invalidMove("no card at index %d", cindex)
	}
	if p.Hand[cindex].Name == deck.Prisoner {
		return nil, invalidMove("%s cannot leave the hand", deck.Prisoner)
	}

	return p, nil
}

// EmbedCard puts a card face down on the embed pile
func (g *Game) EmbedCard(cindex int) error {
	p, err := g.primaryCard(cindex)
	if err != nil {
		return err
	}

	card := p.takeCard(cindex)
	g.Embedded = append(g.Embedded, deck.Holding{PlayerID: p.ID, Card: card})
	g.turn()

	return nil
}

// ImprisonCard places a card on another player
func (g *Game) ImprisonCard(cindex int, targetID string) error {
	p, err := g.primaryCard(cindex)
	if err != nil {
		return err
	}
	target, err := g.Player(targetID)
	if err != nil {
		return err
	}
	if target == p {
		return invalidMove("cannot imprison a card on yourself")
	}

	card := p.takeCard(cindex)
	target.Imprisoned = append(target.Imprisoned, deck.Holding{PlayerID: p.ID, Card: card})
	g.turn()

	return nil
}

// PlayCard puts a card face up and enters its follow-up.
// A follow-up that cannot be carried out is skipped.
func (g *Game) PlayCard(cindex int) error {
	p, err := g.primaryCard(cindex)
	if err != nil {
		return err
	}

	card := p.takeCard(cindex)
	g.Played = append(g.Played, deck.Holding{PlayerID: p.ID, Card: card})

	next, ok := effects[card.Name]
	switch {
	case !ok:
		g.turn()
	case card.Name == deck.Infector:
		// infection takes hold on the player's next turn
		g.Jump = &Jump{PlayerID: p.ID, Phase: next}
		g.turn()
	case !g.possible(next):
		g.turn()
	default:
		g.Phase = next
		g.openInteraction(next)
	}

	return nil
}

// TakeFromPlayed moves a card from the played pile to the current hand
func (g *Game) TakeFromPlayed(index int) error {
	if err := g.expect(protocol.TakeFromPlayed); err != nil {
		return err
	}
	if index < 0 || index >= len(g.Played) {
		return invalidMove("no played card at index %d", index)
	}

	var taken deck.Holding
	g.Played, taken = removeHolding(g.Played, index)
	p := g.current()
	p.Hand = append(p.Hand, taken.Card)
	g.endAction()

	return nil
}

// other finds a player other than the current one
func (g *Game) other(targetID string) (*Player, error) {
	target, err := g.Player(targetID)
	if err != nil {
		return nil, err
	}
	if target == g.current() {
		return nil, invalidMove("choose another player")
	}
	return target, nil
}

// CheckPlayerCards shows the current player another player's hand
func (g *Game) CheckPlayerCards(targetID string) error {
	if err := g.expect(protocol.CheckPlayerCards); err != nil {
		return err
	}
	target, err := g.other(targetID)
	if err != nil {
		return err
	}

	g.current().CheckedHands[target.ID] = copyCards(target.Hand)
	g.endAction()

	return nil
}

// CheckEmbedCards shows the current player the embed pile
func (g *Game) CheckEmbedCards() error {
	if err := g.expect(protocol.CheckEmbedCards); err != nil {
		return err
	}

	g.current().CheckedEmbed = copyHoldings(g.Embedded)
	g.endAction()

	return nil
}

// PickPlayerPickCard swaps a card with another player
func (g *Game) PickPlayerPickCard(own int, targetID string, theirs int) error {
	if err := g.expect(protocol.PickPlayerPickCard); err != nil {
		return err
	}
	target, err := g.other(targetID)
	if err != nil {
		return err
	}
	p := g.current()
	if !p.validCard(own) {
		return invalidMove("no card at index %d", own)
	}
	if !target.validCard(theirs) {
		return invalidMove("%s has no card at index %d", target.ID, theirs)
	}

	p.Hand[own], target.Hand[theirs] = target.Hand[theirs], p.Hand[own]
	g.endAction()

	return nil
}

// MoveImprisonedCard moves an imprisoned card from one player to another
func (g *Game) MoveImprisonedCard(fromID string, index int, toID string) error {
	if err := g.expect(protocol.MoveImprisonedCard); err != nil {
		return err
	}
	from, err := g.Player(fromID)
	if err != nil {
		return err
	}
	to, err := g.Player(toID)
	if err != nil {
		return err
	}
	if from == to {
		return invalidMove("card must move to a different player")
	}
	if index < 0 || index >= len(from.Imprisoned) {
		return invalidMove("%s has no imprisoned card at index %d", from.ID, index)
	}

	var moved deck.Holding
	from.Imprisoned, moved = removeHolding(from.Imprisoned, index)
	to.Imprisoned = append(to.Imprisoned, moved)
	g.endAction()

	return nil
}

// PickFromEmbed takes a card from the embed pile.
// The player goes on to make a primary move.
func (g *Game) PickFromEmbed(index int) error {
	if err := g.expect(protocol.PickFromEmbed); err != nil {
		return err
	}
	if index < 0 || index >= len(g.Embedded) {
		return invalidMove("no embedded card at index %d", index)
	}

	var picked deck.Holding
	g.Embedded, picked = removeHolding(g.Embedded, index)
	p := g.current()
	p.Hand = append(p.Hand, picked.Card)
	g.Phase = protocol.Default

	return nil
}

// ExchangeWithEmbed swaps a hand card with an embedded one
func (g *Game) ExchangeWithEmbed(own, embedIndex int) error {
	if err := g.expect(protocol.ExchangeWithEmbed); err != nil {
		return err
	}
	p := g.current()
	if !p.validCard(own) {
		return invalidMove("no card at index %d", own)
	}
	if embedIndex < 0 || embedIndex >= len(g.Embedded) {
		return invalidMove("no embedded card at index %d", embedIndex)
	}

	card := p.takeCard(own)
	var picked deck.Holding
	g.Embedded, picked = removeHolding(g.Embedded, embedIndex)
	p.Hand = append(p.Hand, picked.Card)
	g.Embedded = append(g.Embedded, deck.Holding{PlayerID: p.ID, Card: card})
	g.endAction()

	return nil
}

// PickPlayer chooses who the current player exchanges a card with
func (g *Game) PickPlayer(targetID string) error {
	if err := g.expect(protocol.PickPlayer); err != nil {
		return err
	}
	target, err := g.other(targetID)
	if err != nil {
		return err
	}

	g.Target = target.ID
	g.Phase = protocol.ExchangeCard
	g.openInteraction(protocol.ExchangeCard)

	return nil
}
