package ssh

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Sink takes ownership of accepted sessions.
type Sink interface {
	Accept(t world.Transport)
}

// Acceptor listens for ssh connections and hands the first shell session
// of each to a Sink.
type Acceptor struct {
	cfg    config.SSHConfig
	conn   config.TelnetConfig
	sink   Sink
	logger *zap.Logger
	server *gossh.ServerConfig

	listener net.Listener
	quit     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewAcceptor creates an ssh acceptor with hostKey as its identity. conn
// supplies the write timeout and output queue size.
//
// Precondition: hostKey, sink and logger must be non-nil.
func NewAcceptor(cfg config.SSHConfig, conn config.TelnetConfig, hostKey gossh.Signer, sink Sink, logger *zap.Logger) *Acceptor {
	server := &gossh.ServerConfig{NoClientAuth: true}
	server.AddHostKey(hostKey)
	return &Acceptor{
		cfg:    cfg,
		conn:   conn,
		sink:   sink,
		logger: logger,
		server: server,
		quit:   make(chan struct{}),
	}
}

// LoadOrCreateHostKey reads the PEM ed25519 key at path, generating and
// writing a new one when the file does not exist.
//
// Postcondition: Returns a signer or a non-nil error.
func LoadOrCreateHostKey(path string) (gossh.Signer, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		signer, err := gossh.ParsePrivateKey(data)
		if err != nil {
			return nil, fmt.Errorf("parsing host key %s: %w", path, err)
		}
		return signer, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading host key %s: %w", path, err)
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating host key: %w", err)
	}
	block, err := gossh.MarshalPrivateKey(priv, "circled host key")
	if err != nil {
		return nil, fmt.Errorf("encoding host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating host key directory: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		return nil, fmt.Errorf("writing host key %s: %w", path, err)
	}
	return gossh.NewSignerFromKey(priv)
}

// ListenAndServe accepts ssh connections until Stop is called.
//
// Precondition: The acceptor must not already be running.
// Postcondition: The listener is closed when this method returns.
func (a *Acceptor) ListenAndServe() error {
	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}

	a.mu.Lock()
	a.listener = listener
	a.running = true
	a.mu.Unlock()

	a.logger.Info("ssh acceptor listening", zap.String("addr", listener.Addr().String()))

	for {
		raw, err := listener.Accept()
		if err != nil {
			select {
			case <-a.quit:
				return nil
			default:
				a.logger.Error("accepting ssh connection", zap.Error(err))
				continue
			}
		}
		go a.handshake(raw)
	}
}

func (a *Acceptor) handshake(raw net.Conn) {
	remote := raw.RemoteAddr().String()
	sshConn, chans, reqs, err := gossh.NewServerConn(raw, a.server)
	if err != nil {
		a.logger.Debug("ssh handshake failed", zap.String("remote_addr", remote), zap.Error(err))
		raw.Close()
		return
	}
	go gossh.DiscardRequests(reqs)

	taken := false
	for newChan := range chans {
		if newChan.ChannelType() != "session" || taken {
			_ = newChan.Reject(gossh.UnknownChannelType, "one session per connection")
			continue
		}
		ch, requests, err := newChan.Accept()
		if err != nil {
			a.logger.Warn("accepting ssh channel", zap.Error(err))
			continue
		}
		shell := make(chan struct{})
		go func(in <-chan *gossh.Request) {
			opened := false
			for req := range in {
				switch req.Type {
				case "shell":
					_ = req.Reply(true, nil)
					if !opened {
						opened = true
						close(shell)
					}
				default:
					// A pty would switch the client to raw mode; without one it
					// keeps local echo and line editing.
					_ = req.Reply(false, nil)
				}
			}
		}(requests)

		select {
		case <-shell:
		case <-a.quit:
			ch.Close()
			sshConn.Close()
			return
		}
		taken = true
		a.logger.Debug("client connected", zap.String("remote_addr", remote))
		a.sink.Accept(NewConn(ch, sshConn, remote, a.conn.WriteTimeout, a.conn.QueueSize))
	}
}

// Stop closes the listener. Sessions already handed to the sink stay open.
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
	a.logger.Info("ssh acceptor stopped")
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
