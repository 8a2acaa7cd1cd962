// Package admin serves the operator API over gRPC: status, the session
// list, broadcasts and shutdown. Callers authenticate with a token issued
// by Login to a player of at least greater-god level.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/cory-johannsen/circlemud/internal/auth"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/gameserver"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "circle.admin.v1.Admin"

// MinLevel is the lowest player level allowed to use the admin API.
const MinLevel = world.LvlGrGod

// Game is the part of the running game the admin API drives.
type Game interface {
	Status(ctx context.Context) (gameserver.StatusReport, error)
	Sessions(ctx context.Context) ([]gameserver.Session, error)
	Broadcast(ctx context.Context, msg string) error
	Shutdown(reason string)
}

// Server implements the admin service.
type Server struct {
	game    Game
	players gameserver.PlayerStore
	tokens  *auth.TokenIssuer
	logger  *zap.Logger
}

// NewServer creates the admin service.
//
// Precondition: every argument must be non-nil.
func NewServer(game Game, players gameserver.PlayerStore, tokens *auth.TokenIssuer, logger *zap.Logger) *Server {
	return &Server{game: game, players: players, tokens: tokens, logger: logger}
}

// Login checks a player's name and password and returns a bearer token.
// The request carries "name" and "password" fields.
func (s *Server) Login(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	fields := req.GetFields()
	name := fields["name"].GetStringValue()
	password := fields["password"].GetStringValue()
	if name == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "name and password are required")
	}
	rec, err := s.players.Load(ctx, name)
	if errors.Is(err, storage.ErrPlayerNotFound) {
		return nil, status.Error(codes.Unauthenticated, "bad name or password")
	}
	if err != nil {
		s.logger.Error("admin login lookup", zap.String("name", name), zap.Error(err))
		return nil, status.Error(codes.Internal, "player lookup failed")
	}
	if !auth.Verify(rec.Name, password, rec.Password) {
		s.logger.Warn("Bad PW on admin login", zap.String("name", rec.Name))
		return nil, status.Error(codes.Unauthenticated, "bad name or password")
	}
	if rec.Level < MinLevel {
		return nil, status.Error(codes.PermissionDenied, "level too low")
	}
	token, err := s.tokens.Issue(rec.Name, rec.Level)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.logger.Info("admin login", zap.String("name", rec.Name), zap.Int("level", rec.Level))
	return wrapperspb.String(token), nil
}

// Status reports the game counters.
func (s *Server) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	r, err := s.game.Status(ctx)
	if err != nil {
		return nil, gameError(err)
	}
	return structpb.NewStruct(map[string]any{
		"name":        r.Name,
		"uptime":      r.Uptime.Round(time.Second).String(),
		"pulse":       r.Pulse,
		"descriptors": r.Descriptors,
		"playing":     r.Playing,
		"characters":  r.Characters,
		"objects":     r.Objects,
		"rooms":       r.Rooms,
		"zones":       r.Zones,
		"restrict":    r.Restrict,
	})
}

// Who lists every connection.
func (s *Server) Who(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	sessions, err := s.game.Sessions(ctx)
	if err != nil {
		return nil, gameError(err)
	}
	list := make([]any, 0, len(sessions))
	for _, ss := range sessions {
		list = append(list, map[string]any{
			"id":        ss.ID,
			"transport": ss.Transport,
			"host":      ss.Host,
			"state":     ss.State,
			"name":      ss.Name,
			"level":     ss.Level,
			"class":     ss.Class,
			"idle":      ss.Idle,
			"login":     ss.LoginTime.UTC().Format(time.RFC3339),
		})
	}
	return structpb.NewList(list)
}

// Broadcast sends a message to every player in the game.
func (s *Server) Broadcast(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "message is required")
	}
	if err := s.game.Broadcast(ctx, req.GetValue()); err != nil {
		return nil, gameError(err)
	}
	return &emptypb.Empty{}, nil
}

// Shutdown stops the game at the end of the current pulse.
func (s *Server) Shutdown(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	who := "admin"
	if c, ok := ClaimsFromContext(ctx); ok {
		who = c.Name
	}
	reason := req.GetValue()
	if reason == "" {
		reason = "admin shutdown"
	}
	s.logger.Info("(GC) shutdown requested", zap.String("by", who), zap.String("reason", reason))
	s.game.Shutdown(fmt.Sprintf("%s by %s", reason, who))
	return &emptypb.Empty{}, nil
}

func gameError(err error) error {
	switch {
	case errors.Is(err, gameserver.ErrShutdown):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// Register adds the service to a gRPC server.
func Register(gs *grpc.Server, s *Server) {
	gs.RegisterService(&serviceDesc, s)
}

type adminServer interface {
	Login(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Status(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Who(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Broadcast(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	Shutdown(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// unary adapts a typed method to a grpc.MethodDesc handler.
func unary[Req any, Resp any](method string, call func(adminServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(adminServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(adminServer), ctx, req.(*Req))
			})
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*adminServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", adminServer.Login),
		unary("Status", adminServer.Status),
		unary("Who", adminServer.Who),
		unary("Broadcast", adminServer.Broadcast),
		unary("Shutdown", adminServer.Shutdown),
	},
	Streams: []grpc.StreamDesc{},
}
