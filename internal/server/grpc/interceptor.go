package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/influence/internal/common"
	pb "github.com/dmitrijs2005/influence/internal/proto"
	"github.com/dmitrijs2005/influence/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const roleKey ctxKey = "role"

// operatorOnly lists the methods observers may not call.
var operatorOnly = map[string]bool{
	pb.ProfileService_Emit_FullMethodName:        true,
	pb.ProfileService_UploadPhoto_FullMethodName: true,
}

// roleFromContext returns the caller's role; "" means observer.
func roleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func isOperator(ctx context.Context) bool {
	return roleFromContext(ctx) == auth.RoleOperator
}

// authorize resolves the caller's role from the access token, if any.
// A call without a token is an observer; a call with a bad token is
// rejected outright.
func (s *GRPCServer) authorize(ctx context.Context, method string) (context.Context, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}

	if accessToken == "" {
		if operatorOnly[method] {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return ctx, nil
	}

	role, err := s.auth.Role(accessToken)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "method", method, "error", err)
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	if operatorOnly[method] && role != auth.RoleOperator {
		return nil, status.Error(codes.PermissionDenied, "operator only")
	}

	return context.WithValue(ctx, roleKey, role), nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authorize(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type authorizedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *authorizedStream) Context() context.Context { return w.ctx }

func (s *GRPCServer) streamAccessTokenInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authorize(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authorizedStream{ServerStream: ss, ctx: ctx})
}
