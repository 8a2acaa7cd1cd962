package websocket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Sink takes ownership of accepted connections.
type Sink interface {
	Accept(t world.Transport)
}

// Acceptor serves the websocket upgrade endpoint and hands each upgraded
// connection to a Sink.
type Acceptor struct {
	cfg      config.WebsocketConfig
	conn     config.TelnetConfig
	sink     Sink
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	running  bool
}

// NewAcceptor creates a websocket acceptor. conn supplies the write
// timeout and output queue size shared with the telnet transport.
//
// Precondition: sink and logger must be non-nil.
func NewAcceptor(cfg config.WebsocketConfig, conn config.TelnetConfig, sink Sink, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		cfg:    cfg,
		conn:   conn,
		sink:   sink,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and hands the connection to the sink.
func (a *Acceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	remote := clientAddr(r)
	a.logger.Debug("client connected", zap.String("remote_addr", remote))
	a.sink.Accept(NewConn(ws, remote, a.conn.WriteTimeout, a.conn.QueueSize))
}

// clientAddr prefers proxy headers over the socket address.
func clientAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}

// ListenAndServe serves the upgrade endpoint until Stop is called.
//
// Precondition: The acceptor must not already be running.
// Postcondition: The listener is closed when this method returns.
func (a *Acceptor) ListenAndServe() error {
	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	path := a.cfg.Path
	if path == "" {
		path = "/ws"
	}
	mux := http.NewServeMux()
	mux.Handle(path, a)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	a.mu.Lock()
	a.srv = srv
	a.listener = listener
	a.running = true
	a.mu.Unlock()

	a.logger.Info("websocket acceptor listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("path", path),
	)
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket: %w", err)
	}
	return nil
}

// Stop closes the listener. Upgraded connections belong to the game.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(ctx); err != nil {
		a.logger.Warn("websocket shutdown", zap.Error(err))
	}
	a.logger.Info("websocket acceptor stopped")
}

// Addr returns the actual listening address, or empty string if not yet listening.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return ""
}

// IsRunning returns whether the acceptor is currently accepting connections.
func (a *Acceptor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}
