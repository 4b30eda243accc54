package game

import (
	"testing"

	"github.com/minaorangina/fanren/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// finished builds a game that has ended with one final card per player
func finished(finals []deck.Role, embedded []deck.Holding) *Game {
	hands := [][]deck.Card{}
	for _, r := range finals {
		hands = append(hands, cards(r))
	}
	return inPlay(table(hands...), Opts{Embedded: embedded, Finished: true})
}

func TestWinners(t *testing.T) {
	t.Run("nobody wins a game in progress", func(t *testing.T) {
		g := inPlay(table(
			cards(deck.Infector, deck.Librarian),
			cards(deck.Librarian),
			cards(deck.Heiress),
		), Opts{})

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Empty(t, winners)
	})

	t.Run("a finished game must end on one card each", func(t *testing.T) {
		g := finished([]deck.Role{deck.Infector, deck.Librarian, deck.Heiress}, nil)
		g.Players[1].Hand = cards(deck.Librarian, deck.Librarian)

		_, err := g.Winners()
		assert.ErrorIs(t, err, ErrInvalidWinCondition)
	})

	t.Run("the infector wins alone below the embed threshold", func(t *testing.T) {
		t.Log("Given three players and an embed pile worth less than nine")
		g := finished(
			[]deck.Role{deck.Librarian, deck.Infector, deck.GoHomeClub},
			held("p1", deck.StudentPresident, deck.ClassMonitor, deck.HonorStudent),
		)

		t.Log("When the winners are computed")
		winners, err := g.Winners()

		t.Log("Then the infector's holder wins alone")
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, winners)
	})

	t.Run("the most imprisoned outsider wins first", func(t *testing.T) {
		g := finished([]deck.Role{deck.Outsider, deck.Infector, deck.GoHomeClub}, nil)
		g.Players[0].Imprisoned = held("p2", deck.ClassMonitor)

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, winners)
	})

	t.Run("an outsider tied with everyone does not win", func(t *testing.T) {
		g := finished([]deck.Role{deck.Outsider, deck.Infector, deck.GoHomeClub}, nil)
		for _, p := range g.Players {
			p.Imprisoned = held("p2", deck.Librarian)
		}

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, winners)
	})

	t.Run("an outsider who is not the most imprisoned does not win", func(t *testing.T) {
		g := finished([]deck.Role{deck.Outsider, deck.Librarian, deck.GoHomeClub}, nil)
		g.Players[0].Imprisoned = held("p2", deck.Librarian)
		g.Players[2].Imprisoned = held("p2", deck.StudentPresident)
		g.Players[1].CheckedPlayers = []string{"p1"}

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Equal(t, []string{"p3"}, winners)
	})

	t.Run("an unchecked prisoner escapes with the accomplice", func(t *testing.T) {
		g := finished(
			[]deck.Role{deck.Prisoner, deck.Librarian, deck.Accomplice, deck.Heiress},
			held("p2", deck.StudentPresident, deck.ClassMonitor, deck.HonorStudent, deck.Librarian),
		)

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p3"}, winners)
	})

	t.Run("the good side wins once the prisoner is checked and the threshold is met", func(t *testing.T) {
		g := finished(
			[]deck.Role{deck.Prisoner, deck.Librarian, deck.Accomplice, deck.Heiress},
			held("p2", deck.StudentPresident, deck.ClassMonitor, deck.HonorStudent, deck.Librarian),
		)
		g.Players[3].CheckedPlayers = []string{"p1"}

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p4"}, winners)
	})

	t.Run("the go-home club wins when nothing else does", func(t *testing.T) {
		g := finished([]deck.Role{deck.Prisoner, deck.GoHomeClub, deck.Librarian}, nil)
		g.Players[2].CheckedPlayers = []string{"p1"}

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, winners)
	})

	t.Run("no rule may fire", func(t *testing.T) {
		g := finished([]deck.Role{deck.Prisoner, deck.Librarian, deck.Heiress}, nil)
		g.Players[2].CheckedPlayers = []string{"p1"}

		winners, err := g.Winners()
		require.NoError(t, err)
		assert.Empty(t, winners)
	})

	t.Run("winners are the same every time", func(t *testing.T) {
		g := finished(
			[]deck.Role{deck.Prisoner, deck.Librarian, deck.Accomplice, deck.Heiress},
			held("p2", deck.StudentPresident),
		)
		before := snapshot(t, g)

		first, err := g.Winners()
		require.NoError(t, err)
		second, err := g.Winners()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, before, snapshot(t, g))
	})
}
