package body

import (
	"math/big"
	"reflect"
	"testing"

	fuzz "github.com/google/gofuzz"
)

// Generated-corpus round trips for the structured kinds. Text is covered
// separately since its representable values are valid UTF-8 strings.
func TestGeneratedCorpusRoundTrips(t *testing.T) {
	f := fuzz.NewWithSeed(7).NilChance(0).NumElements(0, 32)
	r := Default()

	t.Run("state", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			var in State
			f.Fuzz(&in.Records)
			raw, err := r.Encode(in)
			if err != nil {
				t.Fatalf("iteration %d: Encode: %v", i, err)
			}
			p, err := r.Decode(KindState, raw)
			if err != nil {
				t.Fatalf("iteration %d: Decode: %v", i, err)
			}
			out := p.(State)
			if len(out.Records) != len(in.Records) {
				t.Fatalf("iteration %d: %d records, want %d", i, len(out.Records), len(in.Records))
			}
			for j := range in.Records {
				if out.Records[j] != in.Records[j] {
					t.Fatalf("iteration %d: record %d = %+v, want %+v", i, j, out.Records[j], in.Records[j])
				}
			}
		}
	})

	t.Run("token", func(t *testing.T) {
		ops := []TokenOp{TokenDeploy, TokenMint, TokenTransfer, TokenBurn}
		for i := 0; i < 100; i++ {
			op := ops[i%len(ops)]
			amounts := make([]*big.Int, op.arity())
			for j := range amounts {
				var words []byte
				f.Fuzz(&words)
				amounts[j] = new(big.Int).SetBytes(words)
				if amounts[j].BitLen() > 128 {
					amounts[j].Rsh(amounts[j], uint(amounts[j].BitLen()-128))
				}
			}
			in := Token{Op: op, Amounts: amounts}
			raw, err := r.Encode(in)
			if err != nil {
				t.Fatalf("iteration %d: Encode: %v", i, err)
			}
			p, err := r.Decode(KindToken, raw)
			if err != nil {
				t.Fatalf("iteration %d: Decode: %v", i, err)
			}
			out := p.(Token)
			for j := range amounts {
				if out.Amounts[j].Cmp(amounts[j]) != 0 {
					t.Fatalf("iteration %d: amount %d = %v, want %v", i, j, out.Amounts[j], amounts[j])
				}
			}
		}
	})

	t.Run("proof", func(t *testing.T) {
		algs := []HashAlg{HashSHA256, HashSHA512, HashSHA3_256}
		for i := 0; i < 100; i++ {
			n := 1 + i%4
			entries := make([]ProofEntry, 0, n)
			for j := 0; j < n; j++ {
				var seed []byte
				f.Fuzz(&seed)
				e, err := NewProofEntry(algs[(i+j)%len(algs)], seed)
				if err != nil {
					t.Fatalf("NewProofEntry: %v", err)
				}
				if j%2 == 0 {
					e.Filename = "f.bin"
					e.HasSize = true
					e.Size = uint64(len(seed))
				}
				entries = append(entries, e)
			}
			op := ProofBatch
			if n == 1 {
				op = ProofSingle
			}
			in := Proof{Op: op, Entries: entries}
			raw, err := r.Encode(in)
			if err != nil {
				t.Fatalf("iteration %d: Encode: %v", i, err)
			}
			p, err := r.Decode(KindProof, raw)
			if err != nil {
				t.Fatalf("iteration %d: Decode: %v", i, err)
			}
			if !reflect.DeepEqual(p.(Proof), in) {
				t.Fatalf("iteration %d: round trip mismatch", i)
			}
		}
	})
}
