package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck(t *testing.T) {
	expectedSizes := map[int]int{3: 18, 4: 24, 5: 25, 6: 24}

	for seats, size := range expectedSizes {
		d, err := New(seats)
		require.NoError(t, err)

		assert.Len(t, d, size)
		assert.Zero(t, len(d)%seats, "deck of %d must split between %d seats", len(d), seats)

		presidents := 0
		prisoners := 0
		for _, c := range d {
			switch c.Name {
			case StudentPresident:
				presidents++
			case Prisoner:
				prisoners++
			}
		}
		assert.Equal(t, 1, presidents)
		assert.Equal(t, 1, prisoners)
	}

	t.Run("no accomplice at a table of three", func(t *testing.T) {
		d, err := New(3)
		require.NoError(t, err)
		for _, c := range d {
			assert.NotEqual(t, Accomplice, c.Name)
		}
	})

	t.Run("unsupported seat counts", func(t *testing.T) {
		for _, seats := range []int{0, 2, 7} {
			_, err := New(seats)
			assert.ErrorIs(t, err, ErrUnsupportedSeats)
		}
	})

	t.Run("thresholds", func(t *testing.T) {
		assert.Equal(t, 9, Threshold(3))
		assert.Equal(t, 8, Threshold(4))
		assert.Equal(t, 7, Threshold(5))
		assert.Equal(t, 6, Threshold(6))
	})
}

func TestDeckShuffle(t *testing.T) {
	d, err := New(4)
	require.NoError(t, err)
	original := append(Deck{}, d...)

	d.Shuffle(rand.New(rand.NewSource(7)))

	assert.ElementsMatch(t, original, d)
}

func TestDeckDeal(t *testing.T) {
	d, err := New(3)
	require.NoError(t, err)

	first := d.Deal(6)
	second := d.Deal(6)
	assert.Len(t, first, 6)
	assert.Len(t, d, 6)

	t.Log("Dealt hands do not share memory")
	firstCopy := append([]Card{}, first...)
	second = append(second, NewCard(Outsider))
	assert.Equal(t, firstCopy, first)
	assert.Len(t, second, 7)

	assert.Empty(t, d.Deal(10))
	assert.Empty(t, d.Deal(-1))
}
