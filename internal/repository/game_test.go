package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredGame(id string, createdAt time.Time) *entity.Game {
	return &entity.Game{
		ID: id,
		Players: []*entity.Player{
			{Username: "alice", Grid: entity.Grid{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}},
			{Username: "bob", Grid: entity.Grid{{9, 8, 7}, {6, 5, 4}, {3, 2, 1}}},
		},
		Status:    entity.StatusInProgress,
		Version:   1,
		CreatedAt: createdAt,
	}
}

func TestGameRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a fresh game
	game := newStoredGame("123", time.Now().UTC())

	// When: Create is called
	err := gameRepo.Create(ctx, game)

	// Then: no error should be returned, and the game is retrievable
	require.NoError(t, err)

	retrieved, err := gameRepo.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, retrieved.ID)
	assert.Equal(t, game.Status, retrieved.Status)
	assert.Len(t, retrieved.Players, 2)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrieved, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestGameRepository_GetLatest(t *testing.T) {
	t.Run("Returns the most recently created game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: two games created at different times
		older := newStoredGame("older", time.Now().UTC().Add(-time.Hour))
		newer := newStoredGame("newer", time.Now().UTC())

		require.NoError(t, gameRepo.Create(ctx, older))
		require.NoError(t, gameRepo.Create(ctx, newer))

		// When: GetLatest is called
		latest, err := gameRepo.GetLatest(ctx)

		// Then: the newer game is returned
		require.NoError(t, err)
		assert.Equal(t, "newer", latest.ID)
	})

	t.Run("Returns ErrGameNotFound when no game exists", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetLatest is called on an empty store
		latest, err := gameRepo.GetLatest(ctx)

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, latest)
	})
}

func TestGameRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game at version 1
		game := newStoredGame("123", time.Now().UTC())
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: the next version is written
		game.Status = entity.StatusFinished
		game.Version = 2
		err := gameRepo.Update(ctx, game)

		// Then: the stored document reflects the update
		require.NoError(t, err)

		retrieved, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, retrieved.Status)
		assert.Equal(t, int64(2), retrieved.Version)
	})

	t.Run("Update_VersionConflict", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game already at version 2
		game := newStoredGame("123", time.Now().UTC())
		require.NoError(t, gameRepo.Create(ctx, game))

		game.Version = 2
		require.NoError(t, gameRepo.Update(ctx, game))

		// When: a stale writer tries to write version 2 again
		stale := newStoredGame("123", game.CreatedAt)
		stale.Version = 2
		err := gameRepo.Update(ctx, stale)

		// Then: an ErrVersionConflict error should be returned, state unchanged
		require.ErrorIs(t, err, ErrVersionConflict)

		retrieved, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), retrieved.Version)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: Update is called for a game that was never created
		game := newStoredGame("missing", time.Now().UTC())
		game.Version = 2
		err := gameRepo.Update(ctx, game)

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
