package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard(t *testing.T) {
	cases := []struct {
		role  Role
		point int
	}{
		{StudentPresident, 3},
		{ClassMonitor, 2},
		{HonorStudent, 2},
		{Reporter, 1},
		{Prisoner, 0},
		{Outsider, -1},
	}

	for _, c := range cases {
		t.Run(string(c.role), func(t *testing.T) {
			card := NewCard(c.role)
			assert.Equal(t, c.role, card.Name)
			assert.Equal(t, c.point, card.Point)
		})
	}

	t.Run("unknown role panics", func(t *testing.T) {
		assert.Panics(t, func() { NewCard(Role("joker")) })
	})

	t.Run("good side", func(t *testing.T) {
		assert.True(t, Librarian.Good())
		assert.False(t, GoHomeClub.Good())
		assert.False(t, Infector.Good())
		assert.False(t, Prisoner.Good())
	})

	t.Run("holdings sum their points", func(t *testing.T) {
		hs := []Holding{
			{"p1", NewCard(StudentPresident)},
			{"p2", NewCard(Outsider)},
			{"p1", NewCard(ClassMonitor)},
		}
		assert.Equal(t, 4, Points(hs))
		assert.Equal(t, 0, Points(nil))
	})
}
