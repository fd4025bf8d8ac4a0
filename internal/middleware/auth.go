package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"campus-portal-api/internal/auth"
	"campus-portal-api/internal/model"
)

type ctxKey string

const actorKey ctxKey = "actor"

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a model.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFromContext returns the authenticated actor, or nil.
func ActorFromContext(ctx context.Context) model.Actor {
	a, _ := ctx.Value(actorKey).(model.Actor)
	return a
}

// Auth verifies the bearer token and stores the actor it names in the
// request context. Every PortalService method requires one.
func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		actor, err := claims.Actor()
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token claims")
		}
		return next(WithActor(ctx, actor), req)
	}
}
