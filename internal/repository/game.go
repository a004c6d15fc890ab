package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrVersionConflict = errors.New("game was modified concurrently")
)

// gamesByCreatedKey is a sorted set of game IDs scored by creation time,
// backing the "latest game" lookup.
const gamesByCreatedKey = "games:by-created"

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetLatest(ctx context.Context) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(game.ID), gameJSON, 0)
		pipe.ZAdd(ctx, gamesByCreatedKey, redis.Z{
			Score:  float64(game.CreatedAt.UnixNano()),
			Member: game.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) GetLatest(ctx context.Context) (*entity.Game, error) {
	ids, err := that.client.ZRevRange(ctx, gamesByCreatedKey, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query latest game id: %w", err)
	}

	if len(ids) == 0 {
		return nil, ErrGameNotFound
	}

	return that.GetByID(ctx, ids[0])
}

// Update - replaces the stored document, but only if the stored version is
// exactly one behind the version being written. The WATCH/MULTI pair turns a
// concurrent write into ErrVersionConflict instead of a lost update.
func (that *dbGame) Update(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	key := gameKey(game.ID)

	err = that.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrGameNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get stored game: %w", err)
		}

		var storedGame entity.Game
		if err = json.Unmarshal([]byte(stored), &storedGame); err != nil {
			return fmt.Errorf("failed to unmarshal stored game: %w", err)
		}

		if storedGame.Version != game.Version-1 {
			return fmt.Errorf("%w: stored version %d, writing version %d", ErrVersionConflict, storedGame.Version, game.Version)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: transaction aborted", ErrVersionConflict)
	}

	if err != nil {
		return err
	}

	return nil
}

func gameKey(id string) string {
	return "game:" + id
}
