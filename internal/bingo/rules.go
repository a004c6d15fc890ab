package bingo

import (
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const (
	MinNumber = 1
	MaxNumber = 9
)

// ValidateGrid - checks that a grid holds exactly the nine distinct values 1-9.
// A malformed request body leaves unset cells at zero, which fails the range check.
func ValidateGrid(grid entity.Grid) error {
	seen := make(map[int]struct{}, entity.GridSize*entity.GridSize)

	for _, row := range grid {
		for _, value := range row {
			if value < MinNumber || value > MaxNumber {
				return fmt.Errorf("%w: value %d is out of range 1-9", apperror.ErrInvalidGrid, value)
			}

			if _, ok := seen[value]; ok {
				return fmt.Errorf("%w: duplicate value %d", apperror.ErrInvalidGrid, value)
			}

			seen[value] = struct{}{}
		}
	}

	return nil
}

// IsWinning - reports whether the cut numbers fully cover any row or column of the grid.
func IsWinning(grid entity.Grid, cutNumbers []int) bool {
	cut := make(map[int]struct{}, len(cutNumbers))
	for _, number := range cutNumbers {
		cut[number] = struct{}{}
	}

	for i := 0; i < entity.GridSize; i++ {
		rowDone, columnDone := true, true

		for j := 0; j < entity.GridSize; j++ {
			if _, ok := cut[grid[i][j]]; !ok {
				rowDone = false
			}

			if _, ok := cut[grid[j][i]]; !ok {
				columnDone = false
			}
		}

		if rowDone || columnDone {
			return true
		}
	}

	return false
}

// ApplyDraw - applies one drawn number to the game: cuts it for every player
// whose grid holds it, re-evaluates wins for players that changed, and moves
// the status to finished or tied. The game is mutated only on a nil return.
func ApplyDraw(game *entity.Game, number int) error {
	if number < MinNumber || number > MaxNumber {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidNumber, number)
	}

	if game.IsOver() {
		return apperror.ErrGameAlreadyOver
	}

	numberCut := false

	for _, player := range game.Players {
		if !player.Grid.Contains(number) || player.HasCut(number) {
			continue
		}

		player.CutNumbers = append(player.CutNumbers, number)
		numberCut = true

		// Won is sticky: only ever set, never cleared.
		if !player.Won && IsWinning(player.Grid, player.CutNumbers) {
			player.Won = true
		}
	}

	if !numberCut {
		return fmt.Errorf("%w: number %d", apperror.ErrNumberNotCut, number)
	}

	updateGameStatus(game)
	game.CurrentNumber = &number

	return nil
}

// updateGameStatus - a tie requires both players to complete a line on the
// same draw; once one player has won earlier the game is already terminal.
func updateGameStatus(game *entity.Game) {
	winners := 0
	for _, player := range game.Players {
		if player.Won {
			winners++
		}
	}

	switch winners {
	case 2:
		game.Status = entity.StatusTied
	case 1:
		game.Status = entity.StatusFinished
	}
}
