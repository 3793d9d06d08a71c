package grpcindex

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"seamark.dev/seamark/index"
)

// Server exposes an index.Index over the Index gRPC service.
type Server struct {
	UnimplementedIndexServer
	Index index.Index
}

func (s *Server) FindByPrefix(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Index == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing index")
	}
	raw := in.GetValue()
	if len(raw) != len(index.Prefix{}) {
		return nil, status.Error(codes.InvalidArgument, ErrBadPrefix.Error())
	}
	var p index.Prefix
	copy(p[:], raw)

	ids, err := s.Index.FindByPrefix(ctx, p)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := make([]byte, 0, len(ids)*index.TxIDLen)
	for _, id := range ids {
		out = append(out, id[:]...)
	}
	return wrapperspb.Bytes(out), nil
}
