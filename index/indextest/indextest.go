// Package indextest holds the conformance suite every index.Index
// implementation must pass before the resolver can trust it.
package indextest

import (
	"context"
	"strings"
	"testing"

	"seamark.dev/seamark/index"
)

// NewIndex constructs a fresh index for a test, pre-populated with
// txids. The returned index MUST be isolated from other tests.
type NewIndex func(t *testing.T, txids []index.TxID) index.Index

func mustTxID(t *testing.T, pair string) index.TxID {
	t.Helper()
	id, err := index.ParseTxID(strings.Repeat(pair, 32))
	if err != nil {
		t.Fatalf("ParseTxID: %v", err)
	}
	return id
}

// RunConformance exercises the lookup contract: exact results for the
// queried prefix, empty results for unknown prefixes, stability across
// repeated calls, and no aliasing of returned slices.
func RunConformance(t *testing.T, newIndex NewIndex) {
	t.Helper()
	ctx := context.Background()

	t.Run("EmptyIndex", func(t *testing.T) {
		ix := newIndex(t, nil)
		got, err := ix.FindByPrefix(ctx, mustTxID(t, "aa").Prefix())
		if err != nil {
			t.Fatalf("FindByPrefix: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("empty index returned %d ids", len(got))
		}
	})

	t.Run("SingleMatch", func(t *testing.T) {
		id := mustTxID(t, "ab")
		other := mustTxID(t, "cd")
		ix := newIndex(t, []index.TxID{id, other})

		got, err := ix.FindByPrefix(ctx, id.Prefix())
		if err != nil {
			t.Fatalf("FindByPrefix: %v", err)
		}
		if len(got) != 1 || got[0] != id {
			t.Fatalf("got %v, want exactly %s", got, id)
		}
	})

	t.Run("PrefixCollision", func(t *testing.T) {
		// Same leading 8 bytes, different tails.
		a, err := index.ParseTxID(strings.Repeat("11", 8) + strings.Repeat("aa", 24))
		if err != nil {
			t.Fatalf("ParseTxID: %v", err)
		}
		b, err := index.ParseTxID(strings.Repeat("11", 8) + strings.Repeat("bb", 24))
		if err != nil {
			t.Fatalf("ParseTxID: %v", err)
		}
		ix := newIndex(t, []index.TxID{a, b})

		got, err := ix.FindByPrefix(ctx, a.Prefix())
		if err != nil {
			t.Fatalf("FindByPrefix: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d ids, want 2", len(got))
		}
		seen := map[index.TxID]bool{got[0]: true, got[1]: true}
		if !seen[a] || !seen[b] {
			t.Fatalf("collision set %v missing a candidate", got)
		}
	})

	t.Run("RepeatedLookupsAgree", func(t *testing.T) {
		id := mustTxID(t, "ef")
		ix := newIndex(t, []index.TxID{id})
		for i := 0; i < 3; i++ {
			got, err := ix.FindByPrefix(ctx, id.Prefix())
			if err != nil {
				t.Fatalf("lookup %d: %v", i, err)
			}
			if len(got) != 1 || got[0] != id {
				t.Fatalf("lookup %d returned %v", i, got)
			}
		}
	})

	t.Run("NoAliasing", func(t *testing.T) {
		id := mustTxID(t, "0f")
		ix := newIndex(t, []index.TxID{id})

		got, err := ix.FindByPrefix(ctx, id.Prefix())
		if err != nil {
			t.Fatalf("FindByPrefix: %v", err)
		}
		got[0] = index.TxID{}

		again, err := ix.FindByPrefix(ctx, id.Prefix())
		if err != nil {
			t.Fatalf("FindByPrefix: %v", err)
		}
		if len(again) != 1 || again[0] != id {
			t.Fatal("mutating a result corrupted the index")
		}
	})
}
