package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type gameService interface {
	CreateGame(ctx context.Context, players []*entity.Player) (*entity.Game, error)
	GetLatestGame(ctx context.Context) (*entity.Game, error)
	CutNumber(ctx context.Context, gameID string, number int) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	game   gameService
}

func New(logger *slog.Logger, game gameService) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

// Start - starts the HTTP API server.
func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/game/latest", that.handleLatestGame)
	mux.HandleFunc("POST /api/game/new", that.handleNewGame)
	mux.HandleFunc("POST /api/game/cutNumber", that.handleCutNumber)
	mux.HandleFunc("GET /ping", that.handlePing)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
