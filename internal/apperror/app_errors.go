package apperror

import "errors"

var (
	ErrInvalidPlayerCount = errors.New("game must have exactly 2 players")
	ErrInvalidGrid        = errors.New("invalid grid")
	ErrInvalidNumber      = errors.New("number must be between 1 and 9")
	ErrNumberNotCut       = errors.New("number already cut or not in any grid")
	ErrGameAlreadyOver    = errors.New("game is already over")
)
