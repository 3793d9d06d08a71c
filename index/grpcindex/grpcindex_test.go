package grpcindex

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"seamark.dev/seamark/index"
	"seamark.dev/seamark/index/indextest"
	"seamark.dev/seamark/index/memindex"
)

func newBufClient(t *testing.T, backing index.Index) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryLoggingInterceptor(zerolog.Nop())))
	RegisterIndexServer(srv, &Server{Index: backing})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewIndexClient(cc), Timeout: 2 * time.Second}
}

func TestConformanceOverBufconn(t *testing.T) {
	indextest.RunConformance(t, func(t *testing.T, txids []index.TxID) index.Index {
		backing := memindex.New()
		backing.Add(txids...)
		return newBufClient(t, backing)
	})
}

func TestBadPrefixRejected(t *testing.T) {
	client := newBufClient(t, memindex.New())

	reply, err := client.client.FindByPrefix(context.Background(), wrapperspb.Bytes([]byte{1, 2, 3}))
	assert.Nil(t, reply)
	assert.ErrorIs(t, mapRPC(err), ErrBadPrefix)
}

func TestClosedClient(t *testing.T) {
	var c *Client
	assert.NoError(t, c.Close())

	c = &Client{}
	_, err := c.FindByPrefix(context.Background(), index.Prefix{})
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestDecodeTxIDs(t *testing.T) {
	id, err := index.ParseTxID(strings.Repeat("ab", 32))
	require.NoError(t, err)

	ids, err := decodeTxIDs(append(id[:], id[:]...))
	require.NoError(t, err)
	assert.Equal(t, []index.TxID{id, id}, ids)

	ids, err = decodeTxIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = decodeTxIDs(id[:31])
	assert.ErrorIs(t, err, ErrBadReply)
}
