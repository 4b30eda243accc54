package game

import "github.com/minaorangina/fanren/deck"

type winRule func(g *Game) []string

// rules are tried in order; the first to name a winner decides the game
var winRules = []winRule{
	outsiderWins,
	infectorWins,
	prisonerEscapes,
	goodSideWins,
	goHomeClubWins,
}

// Winners returns the winning player ids once the game is over.
// It returns nothing for a game in progress or an aborted one.
func (g *Game) Winners() ([]string, error) {
	if !g.Finished || g.Aborted {
		return []string{}, nil
	}

	for _, p := range g.Players {
		if len(p.Hand) != 1 {
			return nil, errorf(CodeInvalidWinCondition, "%s ended with %d cards", p.ID, len(p.Hand))
		}
	}

	for _, rule := range winRules {
		if winners := rule(g); len(winners) > 0 {
			return winners, nil
		}
	}

	return []string{}, nil
}

func holdersOf(g *Game, r deck.Role) []string {
	ids := []string{}
	for _, p := range g.Players {
		if p.finalRole() == r {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// outsiderWins when the outsider ends as the most imprisoned player.
// A table where everyone is tied has no most imprisoned player.
func outsiderWins(g *Game) []string {
	max := 0
	for i, p := range g.Players {
		if points := p.imprisonedPoints(); i == 0 || points > max {
			max = points
		}
	}

	mostImprisoned := []*Player{}
	for _, p := range g.Players {
		if p.imprisonedPoints() == max {
			mostImprisoned = append(mostImprisoned, p)
		}
	}
	if len(mostImprisoned) == len(g.Players) {
		return nil
	}

	winners := []string{}
	for _, p := range mostImprisoned {
		if p.finalRole() == deck.Outsider {
			winners = append(winners, p.ID)
		}
	}
	if len(winners) != 1 {
		return nil
	}
	return winners
}

// infectorWins alone when the embed pile falls short
func infectorWins(g *Game) []string {
	if deck.Points(g.Embedded) >= deck.Threshold(len(g.Players)) {
		return nil
	}
	holders := holdersOf(g, deck.Infector)
	if len(holders) != 1 {
		return nil
	}
	return holders
}

// prisonerEscapes when nobody checked the prisoner; accomplices share the win
func prisonerEscapes(g *Game) []string {
	holders := holdersOf(g, deck.Prisoner)
	if len(holders) != 1 {
		return nil
	}
	prisoner := holders[0]

	for _, p := range g.Players {
		if p.hasChecked(prisoner) {
			return nil
		}
	}

	return append(holders, holdersOf(g, deck.Accomplice)...)
}

func goodSideWins(g *Game) []string {
	if deck.Points(g.Embedded) < deck.Threshold(len(g.Players)) {
		return nil
	}
	winners := []string{}
	for _, p := range g.Players {
		if p.finalRole().Good() {
			winners = append(winners, p.ID)
		}
	}
	return winners
}

func goHomeClubWins(g *Game) []string {
	return holdersOf(g, deck.GoHomeClub)
}
