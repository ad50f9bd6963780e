package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/model"
	pb "github.com/dmitrijs2005/influence/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Login(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	token, err := s.auth.Login(req.GetValue())
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Warn(ctx, "operator login rejected")
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		s.logger.Error(ctx, "login failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "operator logged in")
	return wrapperspb.String(token), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

// Emit applies one create_profile, delete_profile or update_profile event.
func (s *GRPCServer) Emit(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	name, raw, err := pb.DecodeEvent(req)
	if err != nil {
		return nil, toStatus(err)
	}

	switch name {
	case common.EventCreateProfile:
		var p model.Profile
		if err := pb.DecodePayload(raw, &p); err != nil {
			return nil, toStatus(err)
		}
		_, err = s.profiles.Create(ctx, p)

	case common.EventDeleteProfile:
		var d pb.DeletePayload
		if err := pb.DecodePayload(raw, &d); err != nil {
			return nil, toStatus(err)
		}
		err = s.profiles.Delete(ctx, d.Index, d.ID)

	case common.EventUpdateProfile:
		var u pb.UpdatePayload
		if err := pb.DecodePayload(raw, &u); err != nil {
			return nil, toStatus(err)
		}
		_, err = s.profiles.Update(ctx, u.Index, u.ID, u.Profile)

	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown event %q", name)
	}

	if err != nil {
		s.logger.Error(ctx, "event failed", "event", name, "error", err)
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// UploadPhoto stores the photo; its file name travels in metadata.
func (s *GRPCServer) UploadPhoto(ctx context.Context, req *wrapperspb.BytesValue) (*structpb.Struct, error) {
	var filename string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(common.PhotoFilenameHeaderName); len(v) > 0 {
			filename = v[0]
		}
	}
	if filename == "" {
		return nil, status.Error(codes.InvalidArgument, "missing photo filename")
	}

	key, err := s.photos.Upload(ctx, filename, req.GetValue())
	if err != nil {
		s.logger.Error(ctx, "photo upload failed", "file", filename, "error", err)
		return nil, toStatus(err)
	}
	return pb.UploadResponse(key), nil
}

// Subscribe streams every snapshot, starting with the current one, until
// the client goes away or the server shuts down. Observers get the
// redacted projection.
func (s *GRPCServer) Subscribe(_ *emptypb.Empty, stream pb.ProfileService_SubscribeServer) error {
	ctx := stream.Context()
	operator := isOperator(ctx)

	sub := s.hub.Subscribe()
	defer sub.Cancel()

	s.logger.Debug(ctx, "subscriber attached", "operator", operator)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-sub.C:
			if !ok {
				return nil
			}
			if !operator {
				snapshot = model.RedactAll(snapshot)
			}
			msg, err := pb.EncodeSnapshot(snapshot)
			if err != nil {
				return status.Error(codes.Internal, err.Error())
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		}
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorInvalidEvent), errors.Is(err, common.ErrorInvalidPayload):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
