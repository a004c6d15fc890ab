package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository"
)

type newGameRequest struct {
	Players []*entity.Player `json:"players"`
}

type cutNumberRequest struct {
	GameID string `json:"gameId"`
	Number *int   `json:"number"`
}

type cutNumberResponse struct {
	Success bool         `json:"success"`
	Game    *entity.Game `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleLatestGame - responds with the most recent game, or a JSON null when
// no game has been created yet.
func (that *Server) handleLatestGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.GetLatestGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.game.CreateGame(r.Context(), req.Players)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleCutNumber(w http.ResponseWriter, r *http.Request) {
	var req cutNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.GameID == "" || req.Number == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "gameId and number are required"})
		return
	}

	game, err := that.game.CutNumber(r.Context(), req.GameID, *req.Number)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, cutNumberResponse{Success: true, Game: game})
}

// writeError - maps domain errors onto HTTP status codes: validation and
// conflict errors are the caller's fault, unknown failures are the server's.
func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidPlayerCount),
		errors.Is(err, apperror.ErrInvalidGrid),
		errors.Is(err, apperror.ErrInvalidNumber),
		errors.Is(err, apperror.ErrNumberNotCut),
		errors.Is(err, apperror.ErrGameAlreadyOver):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
