package game

import "github.com/minaorangina/fanren/deck"

func containsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func copyCards(cards []deck.Card) []deck.Card {
	c := make([]deck.Card, len(cards))
	copy(c, cards)
	return c
}

func copyHoldings(hs []deck.Holding) []deck.Holding {
	c := make([]deck.Holding, len(hs))
	copy(c, hs)
	return c
}

func removeHolding(hs []deck.Holding, i int) ([]deck.Holding, deck.Holding) {
	h := hs[i]
	return append(hs[:i:i], hs[i+1:]...), h
}
