// Package grpcindex carries the prefix-lookup Index service over gRPC:
// a client that satisfies index.Index and a server that exposes any
// index.Index implementation.
package grpcindex

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"seamark.dev/seamark/index"
)

// Client implements index.Index over the Index gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client IndexClient

	// Timeout applies per RPC when non-zero and the caller's context
	// carries no deadline of its own.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewIndexClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) FindByPrefix(ctx context.Context, p index.Prefix) ([]index.TxID, error) {
	if c == nil || c.client == nil {
		return nil, ErrClientClosed
	}
	if c.Timeout > 0 {
		if _, has := ctx.Deadline(); !has {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.Timeout)
			defer cancel()
		}
	}

	reply, err := c.client.FindByPrefix(ctx, wrapperspb.Bytes(p[:]))
	if err != nil {
		return nil, mapRPC(err)
	}
	return decodeTxIDs(reply.GetValue())
}

func decodeTxIDs(raw []byte) ([]index.TxID, error) {
	if len(raw)%index.TxIDLen != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadReply, len(raw))
	}
	ids := make([]index.TxID, 0, len(raw)/index.TxIDLen)
	for off := 0; off < len(raw); off += index.TxIDLen {
		var id index.TxID
		copy(id[:], raw[off:off+index.TxIDLen])
		ids = append(ids, id)
	}
	return ids, nil
}
