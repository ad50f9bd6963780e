// Package grpc exposes the profile service over gRPC: operator login, event
// emission, photo upload and the snapshot stream.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/model"
	pb "github.com/dmitrijs2005/influence/internal/proto"
	"github.com/dmitrijs2005/influence/internal/server/hub"
	"google.golang.org/grpc"
)

// ProfileService applies profile events.
type ProfileService interface {
	Create(ctx context.Context, p model.Profile) (model.Profile, error)
	Update(ctx context.Context, index int, id string, p model.Profile) (model.Profile, error)
	Delete(ctx context.Context, index int, id string) error
}

// PhotoUploader stores an uploaded photo and returns its key.
type PhotoUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Authenticator issues and checks operator tokens.
type Authenticator interface {
	Login(passphrase string) (string, error)
	Role(token string) (string, error)
}

// Broadcaster hands out snapshot subscriptions.
type Broadcaster interface {
	Subscribe() *hub.Subscription
	Close()
}

type GRPCServer struct {
	pb.UnimplementedProfileServiceServer
	address  string
	profiles ProfileService
	photos   PhotoUploader
	auth     Authenticator
	hub      Broadcaster
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ps ProfileService, pu PhotoUploader, au Authenticator, b Broadcaster) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		profiles: ps,
		photos:   pu,
		auth:     au,
		hub:      b,
	}
}

// maxPhotoSize bounds a single UploadPhoto request.
const maxPhotoSize = 16 << 20

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxPhotoSize),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	pb.RegisterProfileServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled. Open snapshot
// streams are ended before the graceful stop so it does not wait on them.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.hub.Close()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
