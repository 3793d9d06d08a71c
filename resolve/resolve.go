// Package resolve classifies a message's parent references against an
// external lookup index.
//
// Resolution is stateless and idempotent: re-running it against an
// unchanged index yields an identical classification. It performs no
// caching (callers wanting one wrap the index in an index.TTLCache) and
// no retries; timeout and cancellation policy on the lookup belongs to
// the index client behind the context.
package resolve

import (
	"context"
	"fmt"
	"sort"

	"seamark.dev/seamark/index"
	"seamark.dev/seamark/wire"
)

// Status classifies one anchor.
type Status string

const (
	// StatusResolved marks exactly one candidate for the prefix.
	StatusResolved Status = "Resolved"

	// StatusOrphan marks a prefix with no candidate yet. Orphans are
	// expected during normal confirmation lag and may resolve later as
	// more data reaches the index.
	StatusOrphan Status = "Orphan"

	// StatusAmbiguous marks a genuine prefix collision. No tie-break is
	// applied here: every candidate is surfaced and callers needing a
	// single answer supply their own disambiguation policy.
	StatusAmbiguous Status = "Ambiguous"
)

// ResolvedAnchor is the classification of one anchor. Candidates is
// populated only for StatusAmbiguous, sorted lexically so an unchanged
// index always yields byte-identical output.
type ResolvedAnchor struct {
	Anchor     wire.Anchor
	Status     Status
	TxID       index.TxID   // set when Status is StatusResolved
	Candidates []index.TxID // set when Status is StatusAmbiguous
}

// Parent returns the resolved parent output as txid and vout.
// It is only meaningful for StatusResolved.
func (ra ResolvedAnchor) Parent() (index.TxID, uint8) {
	return ra.TxID, ra.Anchor.Vout
}

// Anchors classifies each anchor in order. The only error source is the
// lookup itself; a failed lookup aborts with no partial result.
func Anchors(ctx context.Context, ix index.Index, anchors []wire.Anchor) ([]ResolvedAnchor, error) {
	out := make([]ResolvedAnchor, 0, len(anchors))
	for i, a := range anchors {
		candidates, err := ix.FindByPrefix(ctx, index.Prefix(a.TxPrefix))
		if err != nil {
			return nil, fmt.Errorf("resolve: anchor %d (%x): %w", i, a.TxPrefix, err)
		}
		out = append(out, classify(a, candidates))
	}
	return out, nil
}

// Message classifies every anchor of m. A root message resolves to an
// empty list.
func Message(ctx context.Context, ix index.Index, m *wire.Message) ([]ResolvedAnchor, error) {
	return Anchors(ctx, ix, m.Anchors)
}

func classify(a wire.Anchor, candidates []index.TxID) ResolvedAnchor {
	ra := ResolvedAnchor{Anchor: a}
	switch len(candidates) {
	case 0:
		ra.Status = StatusOrphan
	case 1:
		ra.Status = StatusResolved
		ra.TxID = candidates[0]
	default:
		ra.Status = StatusAmbiguous
		ra.Candidates = dedupSorted(candidates)
		if len(ra.Candidates) == 1 {
			// The index reported the same identifier more than once.
			ra.Status = StatusResolved
			ra.TxID = ra.Candidates[0]
			ra.Candidates = nil
		}
	}
	return ra
}

func dedupSorted(ids []index.TxID) []index.TxID {
	out := append([]index.TxID(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		return string(out[i][:]) < string(out[j][:])
	})
	n := 0
	for i, id := range out {
		if i == 0 || id != out[n-1] {
			out[n] = id
			n++
		}
	}
	return out[:n]
}
