package grpcindex

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrClientClosed = errors.New("grpcindex: client closed")
	ErrBadPrefix    = errors.New("grpcindex: prefix must be 8 bytes")
	ErrBadReply     = errors.New("grpcindex: reply is not a whole number of txids")
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		// Server uses InvalidArgument for malformed prefixes.
		return ErrBadPrefix
	default:
		return err
	}
}
