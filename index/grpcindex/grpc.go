package grpcindex

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Wire contract, using protobuf well-known wrapper types so this package
// does not require a protoc/codegen toolchain:
//
//   - FindByPrefix request: BytesValue holding exactly 8 prefix bytes.
//   - FindByPrefix response: BytesValue holding the matching full
//     identifiers concatenated, 32 bytes each. Zero matches is an empty
//     value, not an error.
//
// Proto definition: index.proto.

// IndexServer is the server API for the Index gRPC service.
type IndexServer interface {
	FindByPrefix(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedIndexServer can be embedded to have forward compatible
// implementations.
type UnimplementedIndexServer struct{}

func (UnimplementedIndexServer) FindByPrefix(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method FindByPrefix not implemented")
}

// RegisterIndexServer registers the Index service on a gRPC server.
func RegisterIndexServer(s grpc.ServiceRegistrar, srv IndexServer) {
	s.RegisterService(&Index_ServiceDesc, srv)
}

// IndexClient is the client API for the Index gRPC service.
type IndexClient interface {
	FindByPrefix(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type indexClient struct{ cc grpc.ClientConnInterface }

func NewIndexClient(cc grpc.ClientConnInterface) IndexClient { return &indexClient{cc: cc} }

func (c *indexClient) FindByPrefix(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/seamark.index.v1.Index/FindByPrefix", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Index_FindByPrefix_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IndexServer).FindByPrefix(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/seamark.index.v1.Index/FindByPrefix"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IndexServer).FindByPrefix(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Index_ServiceDesc is the grpc.ServiceDesc for the Index service.
var Index_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "seamark.index.v1.Index",
	HandlerType: (*IndexServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindByPrefix", Handler: _Index_FindByPrefix_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "index.proto",
}
