// Package index defines the lookup collaborator the anchor resolver
// consumes: a read-only map from truncated transaction-id prefixes to
// the full identifiers currently visible to an index.
package index

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"seamark.dev/seamark/wire"
)

// TxIDLen is the length of a full transaction identifier.
const TxIDLen = 32

// TxID is a full transaction identifier.
type TxID [TxIDLen]byte

// Prefix is the leading 64 bits of a TxID, as carried in an anchor.
type Prefix [wire.PrefixLen]byte

// ErrBadTxID reports a malformed transaction identifier.
var ErrBadTxID = errors.New("index: malformed txid")

// ParseTxID parses a 64-character hex transaction identifier.
func ParseTxID(s string) (TxID, error) {
	var id TxID
	if len(s) != hex.EncodedLen(TxIDLen) {
		return id, fmt.Errorf("%w: %d hex chars", ErrBadTxID, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("%w: %v", ErrBadTxID, err)
	}
	return id, nil
}

func (id TxID) String() string { return hex.EncodeToString(id[:]) }

// Prefix returns the leading bytes an anchor would carry for id.
func (id TxID) Prefix() Prefix {
	var p Prefix
	copy(p[:], id[:wire.PrefixLen])
	return p
}

func (p Prefix) String() string { return hex.EncodeToString(p[:]) }

// Index is the consumed lookup capability. FindByPrefix returns every
// full identifier sharing the prefix; no matches is an empty result,
// not an error. Implementations own their retry, timeout, and
// cancellation behavior behind the context; the resolver adds none.
type Index interface {
	FindByPrefix(ctx context.Context, p Prefix) ([]TxID, error)
}
