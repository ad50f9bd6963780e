package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/logging"
	pb "github.com/dmitrijs2005/influence/internal/proto"
	"github.com/dmitrijs2005/influence/internal/server/auth"
	"github.com/dmitrijs2005/influence/internal/server/hub"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeAuth struct{}

func (fakeAuth) Login(passphrase string) (string, error) {
	if passphrase != "gretchen" {
		return "", common.ErrorUnauthorized
	}
	return "tok-op", nil
}

func (fakeAuth) Role(token string) (string, error) {
	switch token {
	case "tok-op":
		return auth.RoleOperator, nil
	case "tok-other":
		return "observer", nil
	case "tok-expired":
		return "", common.ErrTokenExpired
	}
	return "", common.ErrInvalidToken
}

func newTestServer() *GRPCServer {
	return NewGRPCServer("", logging.Nop(), &fakeProfiles{}, &fakeUploader{}, fakeAuth{}, hub.New())
}

func withToken(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		common.AccessTokenHeaderName: token,
	}))
}

func TestInterceptor(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		method   string
		wantCode codes.Code
		wantRole string
	}{
		{name: "observer ping", ctx: context.Background(), method: pb.ProfileService_Ping_FullMethodName, wantCode: codes.OK},
		{name: "observer login", ctx: context.Background(), method: pb.ProfileService_Login_FullMethodName, wantCode: codes.OK},
		{name: "emit without token", ctx: context.Background(), method: pb.ProfileService_Emit_FullMethodName, wantCode: codes.Unauthenticated},
		{name: "upload without token", ctx: context.Background(), method: pb.ProfileService_UploadPhoto_FullMethodName, wantCode: codes.Unauthenticated},
		{name: "emit with bad token", ctx: withToken("garbage"), method: pb.ProfileService_Emit_FullMethodName, wantCode: codes.Unauthenticated},
		{name: "ping with bad token", ctx: withToken("garbage"), method: pb.ProfileService_Ping_FullMethodName, wantCode: codes.Unauthenticated},
		{name: "emit with non-operator role", ctx: withToken("tok-other"), method: pb.ProfileService_Emit_FullMethodName, wantCode: codes.PermissionDenied},
		{name: "emit as operator", ctx: withToken("tok-op"), method: pb.ProfileService_Emit_FullMethodName, wantCode: codes.OK, wantRole: auth.RoleOperator},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole string
			called := false
			h := func(ctx context.Context, req interface{}) (interface{}, error) {
				called = true
				gotRole = roleFromContext(ctx)
				return "ok", nil
			}

			_, err := s.accessTokenInterceptor(tt.ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, h)
			if status.Code(err) != tt.wantCode {
				t.Fatalf("code = %v, want %v (err %v)", status.Code(err), tt.wantCode, err)
			}
			if called != (tt.wantCode == codes.OK) {
				t.Fatalf("handler called = %v", called)
			}
			if gotRole != tt.wantRole {
				t.Fatalf("role = %q, want %q", gotRole, tt.wantRole)
			}
		})
	}
}

type ctxStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (c ctxStream) Context() context.Context { return c.ctx }

func TestStreamInterceptor(t *testing.T) {
	s := newTestServer()
	info := &grpc.StreamServerInfo{FullMethod: pb.ProfileService_Subscribe_FullMethodName}

	t.Run("operator role reaches handler", func(t *testing.T) {
		var operator bool
		err := s.streamAccessTokenInterceptor(nil, ctxStream{ctx: withToken("tok-op")}, info,
			func(srv interface{}, ss grpc.ServerStream) error {
				operator = isOperator(ss.Context())
				return nil
			})
		if err != nil || !operator {
			t.Fatalf("err=%v operator=%v", err, operator)
		}
	})

	t.Run("observer without token", func(t *testing.T) {
		var operator = true
		err := s.streamAccessTokenInterceptor(nil, ctxStream{ctx: context.Background()}, info,
			func(srv interface{}, ss grpc.ServerStream) error {
				operator = isOperator(ss.Context())
				return nil
			})
		if err != nil || operator {
			t.Fatalf("err=%v operator=%v", err, operator)
		}
	})

	t.Run("bad token rejected", func(t *testing.T) {
		err := s.streamAccessTokenInterceptor(nil, ctxStream{ctx: withToken("garbage")}, info,
			func(srv interface{}, ss grpc.ServerStream) error {
				t.Fatal("handler must not run")
				return nil
			})
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("code = %v", status.Code(err))
		}
	})
}

func TestInterceptor_ExpiredTokenMessage(t *testing.T) {
	s := newTestServer()
	h := func(ctx context.Context, req interface{}) (interface{}, error) { return nil, nil }

	_, err := s.accessTokenInterceptor(withToken("tok-expired"), nil,
		&grpc.UnaryServerInfo{FullMethod: pb.ProfileService_Emit_FullMethodName}, h)

	st := status.Convert(err)
	if st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		t.Fatalf("got %v %q", st.Code(), st.Message())
	}
}
