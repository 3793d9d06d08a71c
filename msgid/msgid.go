// Package msgid derives deterministic content identifiers for encoded
// messages. IDs are IPFS-compatible CIDv1 strings (raw multicodec,
// sha2-256 multihash), so any content-addressed tooling can key, dedup,
// or pin message blobs without understanding the wire format.
package msgid

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ForBytes returns the CIDv1 (raw + sha2-256) of an encoded message.
func ForBytes(raw []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(raw, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// String returns the CIDv1 string of an encoded message, or "" when the
// digest cannot be computed (unreachable for sha2-256 at default length).
func String(raw []byte) string {
	id, err := ForBytes(raw)
	if err != nil {
		return ""
	}
	return id.String()
}
