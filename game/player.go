package game

import "github.com/minaorangina/fanren/deck"

// Player is one seat at the table
type Player struct {
	ID         string
	Hand       []deck.Card
	Imprisoned []deck.Holding

	// what this player has learned during the game
	CheckedHands   map[string][]deck.Card
	CheckedEmbed   []deck.Holding
	CheckedPlayers []string
}

func NewPlayer(id string, hand ...deck.Card) *Player {
	if hand == nil {
		hand = []deck.Card{}
	}
	return &Player{
		ID:             id,
		Hand:           hand,
		Imprisoned:     []deck.Holding{},
		CheckedHands:   map[string][]deck.Card{},
		CheckedEmbed:   []deck.Holding{},
		CheckedPlayers: []string{},
	}
}

// active players still take turns
func (p *Player) active() bool {
	return len(p.Hand) > 1
}

func (p *Player) validCard(i int) bool {
	return i >= 0 && i < len(p.Hand)
}

func (p *Player) takeCard(i int) deck.Card {
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
	return c
}

func (p *Player) holds(roles ...deck.Role) bool {
	for _, c := range p.Hand {
		for _, r := range roles {
			if c.Name == r {
				return true
			}
		}
	}
	return false
}

func (p *Player) hasChecked(id string) bool {
	return containsString(p.CheckedPlayers, id)
}

func (p *Player) imprisonedPoints() int {
	return deck.Points(p.Imprisoned)
}

// final card of a terminal hand
func (p *Player) finalRole() deck.Role {
	if len(p.Hand) != 1 {
		return ""
	}
	return p.Hand[0].Name
}
