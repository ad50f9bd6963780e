// Package proto describes the influence.v1.ProfileService gRPC service.
//
// Messages are protobuf well-known types (Struct, StringValue, BytesValue,
// Empty), so the service needs no generated message code: this file plays
// the role of the *_grpc.pb.go stub and codec.go maps Struct payloads to the
// model types.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "influence.v1.ProfileService"

const (
	ProfileService_Login_FullMethodName       = "/influence.v1.ProfileService/Login"
	ProfileService_Ping_FullMethodName        = "/influence.v1.ProfileService/Ping"
	ProfileService_Emit_FullMethodName        = "/influence.v1.ProfileService/Emit"
	ProfileService_UploadPhoto_FullMethodName = "/influence.v1.ProfileService/UploadPhoto"
	ProfileService_Subscribe_FullMethodName   = "/influence.v1.ProfileService/Subscribe"
)

// ProfileServiceClient is the client API for ProfileService.
type ProfileServiceClient interface {
	Login(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Emit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	UploadPhoto(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Subscribe(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (ProfileService_SubscribeClient, error)
}

type profileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileServiceClient(cc grpc.ClientConnInterface) ProfileServiceClient {
	return &profileServiceClient{cc}
}

func (c *profileServiceClient) Login(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, ProfileService_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, ProfileService_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Emit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, ProfileService_Emit_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) UploadPhoto(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ProfileService_UploadPhoto_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Subscribe(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (ProfileService_SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &ProfileService_ServiceDesc.Streams[0], ProfileService_Subscribe_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &profileServiceSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ProfileService_SubscribeClient receives profiles_updated events.
type ProfileService_SubscribeClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type profileServiceSubscribeClient struct {
	grpc.ClientStream
}

func (x *profileServiceSubscribeClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ProfileServiceServer is the server API for ProfileService.
type ProfileServiceServer interface {
	Login(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Emit(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	UploadPhoto(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error)
	Subscribe(*emptypb.Empty, ProfileService_SubscribeServer) error
}

// UnimplementedProfileServiceServer can be embedded to have forward compatible implementations.
type UnimplementedProfileServiceServer struct{}

func (UnimplementedProfileServiceServer) Login(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedProfileServiceServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedProfileServiceServer) Emit(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Emit not implemented")
}
func (UnimplementedProfileServiceServer) UploadPhoto(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadPhoto not implemented")
}
func (UnimplementedProfileServiceServer) Subscribe(*emptypb.Empty, ProfileService_SubscribeServer) error {
	return status.Error(codes.Unimplemented, "method Subscribe not implemented")
}

// ProfileService_SubscribeServer sends profiles_updated events.
type ProfileService_SubscribeServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type profileServiceSubscribeServer struct {
	grpc.ServerStream
}

func (x *profileServiceSubscribeServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterProfileServiceServer(s grpc.ServiceRegistrar, srv ProfileServiceServer) {
	s.RegisterService(&ProfileService_ServiceDesc, srv)
}

func _ProfileService_Login_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProfileServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProfileService_Login_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProfileServiceServer).Login(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProfileService_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProfileServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProfileService_Ping_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProfileServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProfileService_Emit_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProfileServiceServer).Emit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProfileService_Emit_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProfileServiceServer).Emit(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProfileService_UploadPhoto_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProfileServiceServer).UploadPhoto(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProfileService_UploadPhoto_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProfileServiceServer).UploadPhoto(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProfileService_Subscribe_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProfileServiceServer).Subscribe(m, &profileServiceSubscribeServer{stream})
}

// ProfileService_ServiceDesc is the grpc.ServiceDesc for ProfileService.
var ProfileService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: _ProfileService_Login_Handler},
		{MethodName: "Ping", Handler: _ProfileService_Ping_Handler},
		{MethodName: "Emit", Handler: _ProfileService_Emit_Handler},
		{MethodName: "UploadPhoto", Handler: _ProfileService_UploadPhoto_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       _ProfileService_Subscribe_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "influence/v1/profile_service.proto",
}
