package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(filepath.Join(t.TempDir(), "journal", "moves.db"), nil)
	require.NoError(t, err)

	return j
}

func TestJournal(t *testing.T) {
	t.Run("returns a game's moves in order", func(t *testing.T) {
		t.Log("Given moves recorded for two games")
		j := openJournal(t)
		defer j.Close()
		ctx := context.Background()

		j.Record(Entry{GameID: "g1", PlayerID: "p1", Command: "IMPRISON", Targets: []string{"p2"}, Decision: []int{1}, Phase: "DEFAULT"})
		j.Record(Entry{GameID: "g2", PlayerID: "p9", Command: "EMBED", Decision: []int{0}, Phase: "DEFAULT"})
		j.Record(Entry{GameID: "g1", PlayerID: "p2", Command: "CHECK_EMBED_CARDS", Phase: "DEFAULT"})

		t.Log("When one game's moves are read back")
		require.NoError(t, j.Flush(ctx))
		entries, err := j.ByGame(ctx, "g1")
		require.NoError(t, err)

		t.Log("Then only that game's moves come back, oldest first")
		require.Len(t, entries, 2)
		assert.Equal(t, "p1", entries[0].PlayerID)
		assert.Equal(t, "IMPRISON", entries[0].Command)
		assert.Equal(t, []string{"p2"}, entries[0].Targets)
		assert.Equal(t, []int{1}, entries[0].Decision)
		assert.Equal(t, "DEFAULT", entries[0].Phase)
		assert.NotEmpty(t, entries[0].ID)
		assert.WithinDuration(t, time.Now(), entries[0].CreatedAt, time.Minute)

		assert.Equal(t, "CHECK_EMBED_CARDS", entries[1].Command)
		assert.Empty(t, entries[1].Targets)
		assert.Empty(t, entries[1].Decision)
	})

	t.Run("an unknown game has no moves", func(t *testing.T) {
		j := openJournal(t)
		defer j.Close()

		entries, err := j.ByGame(context.Background(), "nope")

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("keeps given ids and times", func(t *testing.T) {
		j := openJournal(t)
		defer j.Close()
		at := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

		j.Record(Entry{ID: "move-1", GameID: "g1", PlayerID: "p1", Command: "PLAY", Decision: []int{0}, Phase: "PICK_PLAYER", CreatedAt: at})
		require.NoError(t, j.Flush(context.Background()))

		entries, err := j.ByGame(context.Background(), "g1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "move-1", entries[0].ID)
		assert.Equal(t, at, entries[0].CreatedAt)
	})

	t.Run("close writes what is queued", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "moves.db")
		j, err := Open(path, nil)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			j.Record(Entry{GameID: "g1", PlayerID: "p1", Command: "EMBED", Decision: []int{i}, Phase: "DEFAULT"})
		}
		require.NoError(t, j.Close())
		assert.ErrorIs(t, j.Close(), ErrClosed)
		assert.ErrorIs(t, j.Flush(context.Background()), ErrClosed)

		t.Log("And a reopened journal still has them")
		j, err = Open(path, nil)
		require.NoError(t, err)
		defer j.Close()

		entries, err := j.ByGame(context.Background(), "g1")
		require.NoError(t, err)
		require.Len(t, entries, 10)
		assert.Equal(t, []int{9}, entries[9].Decision)
	})
}
