package deck

import "fmt"

// Card is a role with its point value. Cards with the same role are interchangeable.
type Card struct {
	Name  Role `json:"name"`
	Point int  `json:"point"`
}

// NewCard constructs a card for a catalog role.
// It panics on an unknown role.
func NewCard(r Role) Card {
	if !r.Valid() {
		panic(fmt.Sprintf("unknown role %q", string(r)))
	}
	return Card{Name: r, Point: r.Point()}
}

func (c Card) String() string {
	return fmt.Sprintf("%s(%d)", c.Name, c.Point)
}

// Holding is a card attributed to the player who placed it
type Holding struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// Points sums the points of the held cards
func Points(hs []Holding) int {
	total := 0
	for _, h := range hs {
		total += h.Card.Point
	}
	return total
}
