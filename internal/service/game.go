package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository"
)

type GameService interface {
	CreateGame(ctx context.Context, players []*entity.Player) (*entity.Game, error)
	GetLatestGame(ctx context.Context) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	CutNumber(ctx context.Context, gameID string, number int) (*entity.Game, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetLatest(ctx context.Context) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
}

type changeNotifier interface {
	GameUpdated(game *entity.Game)
}

type gameService struct {
	logger *slog.Logger

	gameRepo gameRepo
	notifier changeNotifier

	mu        sync.Mutex
	gameLocks map[string]*sync.Mutex
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, notifier changeNotifier) GameService {
	return &gameService{
		logger:    logger.With("component", "game-service"),
		gameRepo:  gameRepo,
		notifier:  notifier,
		gameLocks: make(map[string]*sync.Mutex),
	}
}

// CreateGame - validates both players and stores a fresh game. Client-supplied
// cut numbers and won flags are discarded: a new game starts clean.
func (that *gameService) CreateGame(ctx context.Context, players []*entity.Player) (*entity.Game, error) {
	if len(players) != 2 {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidPlayerCount, len(players))
	}

	for _, player := range players {
		if err := bingo.ValidateGrid(player.Grid); err != nil {
			return nil, fmt.Errorf("player %q: %w", player.Username, err)
		}

		player.CutNumbers = nil
		player.Won = false
	}

	game := entity.NewGame(uuid.NewString(), players)

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)
	that.notifier.GameUpdated(game)

	return game, nil
}

// GetLatestGame - returns the most recently created game, or nil if no game
// has ever been created.
func (that *gameService) GetLatestGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.GetLatest(ctx)

	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get latest game: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// CutNumber - applies one draw to a game. Draws against the same game are
// serialized by a per-game mutex so the read-modify-write never interleaves;
// draws against different games proceed in parallel.
func (that *gameService) CutNumber(ctx context.Context, gameID string, number int) (*entity.Game, error) {
	lock := that.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = bingo.ApplyDraw(game, number); err != nil {
		return nil, fmt.Errorf("failed to apply draw: %w", err)
	}

	game.Version++

	if err = that.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("number cut", "gameID", game.ID, "number", number, "status", game.Status)
	that.notifier.GameUpdated(game)

	return game, nil
}

func (that *gameService) lockFor(gameID string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.gameLocks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		that.gameLocks[gameID] = lock
	}

	return lock
}
