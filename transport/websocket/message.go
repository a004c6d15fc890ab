package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const actionGameUpdate = "game:update"

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newGameUpdateMessage(game *entity.Game) (*Message, error) {
	payload, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game: %w", err)
	}

	return &Message{
		Action:  actionGameUpdate,
		Payload: payload,
	}, nil
}
