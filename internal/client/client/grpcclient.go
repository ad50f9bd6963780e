package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/model"
	pb "github.com/dmitrijs2005/influence/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.ProfileServiceClient
	log         logging.Logger
	reconnect   time.Duration

	mu          sync.Mutex
	accessToken string
	passphrase  string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// authContext attaches the current token. Login never carries one: an
// expired token would get the login itself rejected.
func (s *GRPCClient) authContext(ctx context.Context, method string) context.Context {
	if method == pb.ProfileService_Login_FullMethodName {
		return ctx
	}
	if token := s.token(); token != "" {
		return withAccessToken(ctx, token)
	}
	return ctx
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	err := invoker(s.authContext(ctx, method), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	if rerr := s.relogin(ctx); rerr != nil {
		return err
	}

	// logged in again, retry with the new token
	return invoker(s.authContext(ctx, method), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamAccessTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(s.authContext(ctx, method), desc, cc, method, opts...)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func NewProfileClient(endpointURL string, reconnect time.Duration, log logging.Logger) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, reconnect: reconnect, log: log}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewProfileServiceClient(conn)
	return nil
}

func (s *GRPCClient) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// Login exchanges the operator passphrase for an access token. The
// passphrase is kept so an expired token can be renewed.
func (s *GRPCClient) Login(ctx context.Context, passphrase string) error {
	resp, err := s.client.Login(ctx, wrapperspb.String(passphrase))
	if err != nil {
		return s.mapError(err)
	}

	s.mu.Lock()
	s.accessToken = resp.GetValue()
	s.passphrase = passphrase
	s.mu.Unlock()
	return nil
}

func (s *GRPCClient) relogin(ctx context.Context) error {
	s.mu.Lock()
	passphrase := s.passphrase
	s.mu.Unlock()
	if passphrase == "" {
		return ErrUnauthorized
	}
	s.log.Info(ctx, "access token expired, logging in again")
	return s.Login(ctx, passphrase)
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// Emit sends one named event.
func (s *GRPCClient) Emit(ctx context.Context, event string, payload any) error {
	req, err := pb.EncodeEvent(event, payload)
	if err != nil {
		return err
	}
	if _, err := s.client.Emit(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

// UploadPhoto stores an image on the server and returns its identifier.
func (s *GRPCClient) UploadPhoto(ctx context.Context, filename string, data []byte) (string, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, common.PhotoFilenameHeaderName, filename)
	resp, err := s.client.UploadPhoto(ctx, wrapperspb.Bytes(data))
	if err != nil {
		return "", s.mapError(err)
	}
	id := pb.UploadID(resp)
	if id == "" {
		return "", ErrNoUploadID
	}
	return id, nil
}

// Subscribe delivers every snapshot the server pushes to apply, re-opening
// the stream after failures until ctx is cancelled. It returns early only
// when the server refuses the caller.
func (s *GRPCClient) Subscribe(ctx context.Context, apply func([]model.Profile)) error {
	for {
		err := s.subscribeOnce(ctx, apply)
		if ctx.Err() != nil {
			return nil
		}

		switch {
		case err != nil && isTokenExpired(err):
			if rerr := s.relogin(ctx); rerr != nil {
				return rerr
			}
			continue
		case errors.Is(s.mapError(err), ErrUnauthorized):
			return ErrUnauthorized
		}

		s.log.Warn(ctx, "snapshot stream lost, reconnecting", "error", err, "in", s.reconnect)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.reconnect):
		}
	}
}

func (s *GRPCClient) subscribeOnce(ctx context.Context, apply func([]model.Profile)) error {
	stream, err := s.client.Subscribe(ctx, &emptypb.Empty{})
	if err != nil {
		return err
	}
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		if err != nil {
			return err
		}
		snapshot, err := pb.DecodeSnapshot(msg)
		if err != nil {
			s.log.Warn(ctx, "bad snapshot skipped", "error", err)
			continue
		}
		apply(snapshot)
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
