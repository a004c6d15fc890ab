package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/bingo-backend/internal/notifier"
)

const (
	writeTimeout = 10 * time.Second
	readLimit    = 512
)

type changeNotifier interface {
	Subscribe() *notifier.Subscription
	Unsubscribe(sub *notifier.Subscription)
}

// Server pushes committed game updates to connected clients. The channel is
// one-way: client frames are read only to detect a closed connection.
type Server struct {
	logger   *slog.Logger
	notifier changeNotifier
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, changes changeNotifier) *Server {
	return &Server{
		logger:   logger.With("component", "websocket"),
		notifier: changes,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("client connected", "remote", conn.RemoteAddr().String())

	sub := that.notifier.Subscribe()

	go that.writeLoop(conn, sub)
	that.readLoop(conn, sub)
}

// writeLoop - forwards every committed game snapshot to the client, in the
// order the notifier delivered them. Ends when the subscription is closed or
// a write fails.
func (that *Server) writeLoop(conn *websocket.Conn, sub *notifier.Subscription) {
	defer conn.Close()

	for game := range sub.Updates() {
		msg, err := newGameUpdateMessage(game)
		if err != nil {
			that.logger.Error("failed to build update message", "error", err)
			continue
		}

		if err = conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			that.notifier.Unsubscribe(sub)
			return
		}

		if err = conn.WriteJSON(msg); err != nil {
			that.logger.Info("client write failed, disconnecting", "error", err)
			that.notifier.Unsubscribe(sub)
			return
		}
	}
}

// readLoop - discards inbound frames until the client goes away, then tears
// the subscription down.
func (that *Server) readLoop(conn *websocket.Conn, sub *notifier.Subscription) {
	conn.SetReadLimit(readLimit)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	that.notifier.Unsubscribe(sub)
	conn.Close()
}
