// Package memindex provides an in-memory prefix index, used by the
// reference index daemon and as a test double.
package memindex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"seamark.dev/seamark/index"
)

// Index is an in-memory index.Index. Safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	byPx map[index.Prefix][]index.TxID
}

func New() *Index {
	return &Index{byPx: make(map[index.Prefix][]index.TxID)}
}

// Add records txids. Duplicates are ignored; the stored set stays sorted
// so lookups are deterministic.
func (ix *Index) Add(txids ...index.TxID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, id := range txids {
		p := id.Prefix()
		bucket := ix.byPx[p]
		pos := sort.Search(len(bucket), func(i int) bool {
			return bucket[i].String() >= id.String()
		})
		if pos < len(bucket) && bucket[pos] == id {
			continue
		}
		bucket = append(bucket, index.TxID{})
		copy(bucket[pos+1:], bucket[pos:])
		bucket[pos] = id
		ix.byPx[p] = bucket
	}
}

// Len returns the number of indexed identifiers.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	for _, bucket := range ix.byPx {
		n += len(bucket)
	}
	return n
}

func (ix *Index) FindByPrefix(ctx context.Context, p index.Prefix) ([]index.TxID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]index.TxID(nil), ix.byPx[p]...), nil
}

// ReadFrom loads a txid snapshot: one 64-character hex identifier per
// line, blank lines and '#' comments skipped. Returns the number of
// identifiers added.
func (ix *Index) ReadFrom(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	n := 0
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		id, err := index.ParseTxID(s)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		ix.Add(id)
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, nil
}
