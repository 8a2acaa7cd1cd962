package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/cory-johannsen/circlemud/internal/auth"
)

type claimsKey struct{}

// ClaimsFromContext returns the caller's token claims.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// AuthInterceptor requires a valid bearer token of at least MinLevel on
// every method except Login.
func AuthInterceptor(tokens *auth.TokenIssuer, logger *zap.Logger) grpc.UnaryServerInterceptor {
	login := "/" + ServiceName + "/Login"
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if info.FullMethod == login {
			return handler(ctx, req)
		}
		token, ok := bearer(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		claims, err := tokens.Validate(token)
		if err != nil {
			logger.Debug("rejected admin token", zap.String("method", info.FullMethod), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		if claims.Level < MinLevel {
			return nil, status.Error(codes.PermissionDenied, "level too low")
		}
		return handler(context.WithValue(ctx, claimsKey{}, claims), req)
	}
}

func bearer(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get("authorization") {
		if token, found := strings.CutPrefix(v, "Bearer "); found && token != "" {
			return token, true
		}
	}
	return "", false
}
