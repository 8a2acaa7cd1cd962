package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// NewGRPCServer returns a gRPC server carrying the admin service behind
// the token interceptor.
func NewGRPCServer(s *Server, logger *zap.Logger) *grpc.Server {
	gs := grpc.NewServer(grpc.UnaryInterceptor(AuthInterceptor(s.tokens, logger)))
	Register(gs, s)
	return gs
}

// Listener runs a gRPC server on a TCP address.
type Listener struct {
	addr   string
	gs     *grpc.Server
	logger *zap.Logger

	mu  sync.Mutex
	lis net.Listener
}

// NewListener binds gs to addr when Start is called.
func NewListener(addr string, gs *grpc.Server, logger *zap.Logger) *Listener {
	return &Listener{addr: addr, gs: gs, logger: logger}
}

// Start serves until Stop is called.
func (l *Listener) Start() error {
	lis, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}
	l.mu.Lock()
	l.lis = lis
	l.mu.Unlock()
	l.logger.Info("admin gRPC server listening", zap.String("addr", lis.Addr().String()))
	return l.gs.Serve(lis)
}

// Stop finishes in-flight calls and closes the listener.
func (l *Listener) Stop() { l.gs.GracefulStop() }

// Addr returns the bound address, or empty string before Start.
func (l *Listener) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lis == nil {
		return ""
	}
	return l.lis.Addr().String()
}

// MetricsServer serves /metrics over HTTP.
type MetricsServer struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewMetricsServer serves handler at /metrics on addr.
func NewMetricsServer(addr string, handler http.Handler, logger *zap.Logger) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &MetricsServer{
		srv:    &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		logger: logger,
	}
}

// Start serves until Stop is called.
func (m *MetricsServer) Start() error {
	m.logger.Info("metrics listening", zap.String("addr", m.srv.Addr))
	if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving metrics: %w", err)
	}
	return nil
}

// Stop shuts the HTTP server down.
func (m *MetricsServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.srv.Shutdown(ctx); err != nil {
		m.logger.Warn("metrics shutdown", zap.Error(err))
	}
}
