// Package messaging bridges public channels between servers over NATS.
package messaging

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"go.uber.org/zap"
)

// EmbeddedServer is an in-process NATS server for single-host setups.
type EmbeddedServer struct {
	ns             *server.Server
	startupTimeout time.Duration
	logger         *zap.Logger
}

// ServerOpt configures an EmbeddedServer.
type ServerOpt func(*EmbeddedServer)

// WithStartTimeout sets how long Start waits for the server to accept clients.
func WithStartTimeout(d time.Duration) ServerOpt {
	return func(s *EmbeddedServer) { s.startupTimeout = d }
}

// NewEmbeddedServer creates a server bound to 127.0.0.1:port. A port of -1
// picks a free one.
//
// Postcondition: Returns an unstarted server or a non-nil error.
func NewEmbeddedServer(port int, logger *zap.Logger, opts ...ServerOpt) (*EmbeddedServer, error) {
	ns, err := server.NewServer(&server.Options{
		Host:   "127.0.0.1",
		Port:   port,
		NoSigs: true,
		NoLog:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s := &EmbeddedServer{ns: ns, startupTimeout: 10 * time.Second, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start runs the server and waits until it accepts connections.
func (s *EmbeddedServer) Start() error {
	s.ns.Start()
	if !s.ns.ReadyForConnections(s.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}
	s.logger.Info("embedded nats server listening", zap.String("url", s.ns.ClientURL()))
	return nil
}

// ClientURL is the URL clients connect to.
func (s *EmbeddedServer) ClientURL() string { return s.ns.ClientURL() }

// Stop shuts the server down and waits for it to finish.
func (s *EmbeddedServer) Stop() {
	s.ns.Shutdown()
	s.ns.WaitForShutdown()
}
