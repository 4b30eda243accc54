package deck

import (
	"errors"
	"math/rand"
)

const (
	MinSeats = 3
	MaxSeats = 6
)

var ErrUnsupportedSeats = errors.New("deck supports 3 to 6 seats")

// copies of each role per seat count
var composition = map[int]map[Role]int{
	3: {
		StudentPresident: 1, HealthMonitor: 2, Librarian: 2, DisciplineMonitor: 1,
		Heiress: 2, Reporter: 2, ClassMonitor: 2, HonorStudent: 1,
		Prisoner: 1, Accomplice: 0, Outsider: 1, Infector: 1, GoHomeClub: 2,
	},
	4: {
		StudentPresident: 1, HealthMonitor: 2, Librarian: 2, DisciplineMonitor: 2,
		Heiress: 3, Reporter: 3, ClassMonitor: 2, HonorStudent: 2,
		Prisoner: 1, Accomplice: 1, Outsider: 1, Infector: 1, GoHomeClub: 3,
	},
	5: {
		StudentPresident: 1, HealthMonitor: 2, Librarian: 3, DisciplineMonitor: 2,
		Heiress: 3, Reporter: 3, ClassMonitor: 2, HonorStudent: 2,
		Prisoner: 1, Accomplice: 1, Outsider: 1, Infector: 1, GoHomeClub: 3,
	},
	6: {
		StudentPresident: 1, HealthMonitor: 2, Librarian: 2, DisciplineMonitor: 2,
		Heiress: 3, Reporter: 3, ClassMonitor: 2, HonorStudent: 2,
		Prisoner: 1, Accomplice: 1, Outsider: 1, Infector: 1, GoHomeClub: 3,
	},
}

var embedThresholds = map[int]int{3: 9, 4: 8, 5: 7, 6: 6}

// Threshold returns the embed pile total the good side needs for the seat count
func Threshold(seats int) int {
	return embedThresholds[seats]
}

// Deck represents a deck of cards
type Deck []Card

// New builds the unshuffled deck for a table of the given size
func New(seats int) (Deck, error) {
	counts, ok := composition[seats]
	if !ok {
		return nil, ErrUnsupportedSeats
	}

	cards := Deck{}
	for _, r := range Roles {
		for i := 0; i < counts[r]; i++ {
			cards = append(cards, NewCard(r))
		}
	}
	return cards, nil
}

// Shuffle shuffles the deck in place. A nil source uses the global one.
func (d *Deck) Shuffle(r *rand.Rand) {
	actualDeck := *d
	swap := func(i, j int) {
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
	if r == nil {
		rand.Shuffle(len(actualDeck), swap)
		return
	}
	r.Shuffle(len(actualDeck), swap)
}

// Deal deals n number of cards from the deck, until it is empty.
// The dealt cards do not share memory with the deck.
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}
