package notifier

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

// subscriptionBuffer is how many committed updates a subscriber may lag
// behind before it is dropped.
const subscriptionBuffer = 16

// Subscription receives a snapshot of every committed game transition, in
// commit order. The channel is closed when the subscriber is dropped or
// unsubscribes.
type Subscription struct {
	updates chan *entity.Game

	closeOnce sync.Once
}

func (that *Subscription) Updates() <-chan *entity.Game {
	return that.updates
}

func (that *Subscription) close() {
	that.closeOnce.Do(func() {
		close(that.updates)
	})
}

// Notifier fans committed game states out to subscribers. Publishing never
// blocks: a subscriber whose buffer is full is dropped instead.
type Notifier struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func New(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger.With("component", "notifier"),
		subs:   make(map[*Subscription]struct{}),
	}
}

func (that *Notifier) Subscribe() *Subscription {
	sub := &Subscription{
		updates: make(chan *entity.Game, subscriptionBuffer),
	}

	that.mu.Lock()
	that.subs[sub] = struct{}{}
	that.mu.Unlock()

	return sub
}

func (that *Notifier) Unsubscribe(sub *Subscription) {
	that.mu.Lock()
	_, ok := that.subs[sub]
	delete(that.subs, sub)
	that.mu.Unlock()

	if ok {
		sub.close()
	}
}

// GameUpdated - publishes a committed game state to every subscriber.
// Enqueueing happens under the registry lock, so all subscribers observe
// transitions in the same order they were committed.
func (that *Notifier) GameUpdated(game *entity.Game) {
	snapshot := game.Clone()

	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs {
		select {
		case sub.updates <- snapshot:
		default:
			that.logger.Warn("dropping slow subscriber", "gameID", game.ID)
			delete(that.subs, sub)
			sub.close()
		}
	}
}

// SubscriberCount - reports how many subscriptions are active.
func (that *Notifier) SubscriberCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.subs)
}
