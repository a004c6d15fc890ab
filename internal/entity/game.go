package entity

import (
	"time"
)

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in-progress"
	StatusFinished   = "finished"
	StatusTied       = "tied"
)

// Game is the authoritative state of one bingo match between two players.
type Game struct {
	ID            string    `json:"id"`
	Players       []*Player `json:"players"`
	CurrentNumber *int      `json:"currentNumber"`
	Status        string    `json:"status"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewGame(id string, players []*Player) *Game {
	return &Game{
		ID:        id,
		Players:   players,
		Status:    StatusInProgress,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsTied() bool {
	return that.Status == StatusTied
}

// IsOver reports whether the game reached a terminal status.
// No draw may be applied to an over game.
func (that *Game) IsOver() bool {
	return that.IsFinished() || that.IsTied()
}

// Clone returns a deep copy of the game. Snapshots handed to subscribers
// must not alias state the service keeps mutating.
func (that *Game) Clone() *Game {
	clone := *that

	if that.CurrentNumber != nil {
		number := *that.CurrentNumber
		clone.CurrentNumber = &number
	}

	clone.Players = make([]*Player, len(that.Players))
	for i, player := range that.Players {
		clone.Players[i] = player.Clone()
	}

	return &clone
}
