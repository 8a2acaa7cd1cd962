package telnet

import (
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Sink takes ownership of accepted connections. The game implements it.
type Sink interface {
	Accept(t world.Transport)
}

// Acceptor listens for Telnet connections on a TCP port and hands each
// one to a Sink.
type Acceptor struct {
	cfg    config.TelnetConfig
	sink   Sink
	logger *zap.Logger

	listener net.Listener
	quit     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewAcceptor creates a Telnet acceptor with the given configuration.
//
// Precondition: cfg must have a valid port; sink and logger must be non-nil.
// Postcondition: Returns an Acceptor ready to be started with ListenAndServe.
func NewAcceptor(cfg config.TelnetConfig, sink Sink, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		cfg:    cfg,
		sink:   sink,
		logger: logger,
		quit:   make(chan struct{}),
	}
}

// ListenAndServe starts the TCP listener and accepts connections until Stop is called.
// This method blocks until the acceptor is stopped.
//
// Precondition: The acceptor must not already be running.
// Postcondition: The listener is closed when this method returns.
func (a *Acceptor) ListenAndServe() error {
	start := time.Now()

	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}

	a.mu.Lock()
	a.listener = listener
	a.running = true
	a.mu.Unlock()

	a.logger.Info("telnet acceptor listening",
		zap.String("addr", listener.Addr().String()),
		zap.Duration("startup", time.Since(start)),
	)

	for {
		raw, err := listener.Accept()
		if err != nil {
			select {
			case <-a.quit:
				return nil
			default:
				a.logger.Error("accepting connection", zap.Error(err))
				continue
			}
		}
		a.logger.Debug("client connected", zap.String("remote_addr", raw.RemoteAddr().String()))
		a.sink.Accept(NewConn(raw, a.cfg.WriteTimeout, a.cfg.QueueSize))
	}
}

// Stop closes the listener. Connections already handed to the sink stay
// open; the game closes them.
//
// Postcondition: No further connections are accepted.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return
	}
	a.running = false

	close(a.quit)
	if a.listener != nil {
		a.listener.Close()
	}
	a.logger.Info("telnet acceptor stopped")
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
