package body

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func sampleEntry(t *testing.T, alg HashAlg, data string) ProofEntry {
	t.Helper()
	e, err := NewProofEntry(alg, []byte(data))
	if err != nil {
		t.Fatalf("NewProofEntry: %v", err)
	}
	return e
}

func TestProofSingleRoundTrip(t *testing.T) {
	e := sampleEntry(t, HashSHA256, "document contents")
	e.Filename = "paper.pdf"
	e.MIME = "application/pdf"
	e.HasSize = true
	e.Size = 184101
	e.Description = "first draft"

	in := Proof{Op: ProofSingle, Entries: []ProofEntry{e}}
	raw, err := Default().Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p, err := Default().Decode(KindProof, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(p.(Proof), in) {
		t.Errorf("round trip yielded %+v, want %+v", p, in)
	}
}

func TestProofAbsentMetadata(t *testing.T) {
	in := Proof{Op: ProofSingle, Entries: []ProofEntry{sampleEntry(t, HashSHA512, "x")}}
	raw, err := Default().Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// op + alg + digest + four absent fields.
	if want := 1 + 1 + 64 + 4; len(raw) != want {
		t.Fatalf("encoded length = %d, want %d", len(raw), want)
	}
	p, err := Default().Decode(KindProof, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := p.(Proof).Entries[0]
	if out.Filename != "" || out.MIME != "" || out.HasSize || out.Description != "" {
		t.Errorf("absent fields decoded as %+v", out)
	}
}

func TestProofZeroSizeIsPresent(t *testing.T) {
	e := sampleEntry(t, HashSHA256, "empty file")
	e.HasSize = true
	e.Size = 0
	raw, err := Default().Encode(Proof{Op: ProofSingle, Entries: []ProofEntry{e}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p, err := Default().Decode(KindProof, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := p.(Proof).Entries[0]
	if !out.HasSize || out.Size != 0 {
		t.Errorf("zero size must survive the round trip, got %+v", out)
	}
}

func TestProofBatchRoundTrip(t *testing.T) {
	a := sampleEntry(t, HashSHA256, "a")
	b := sampleEntry(t, HashSHA3_256, "b")
	b.Filename = "b.txt"
	c := sampleEntry(t, HashSHA512, "c")
	c.HasSize = true
	c.Size = 3

	in := Proof{Op: ProofBatch, Entries: []ProofEntry{a, b, c}}
	raw, err := Default().Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if raw[0] != byte(ProofBatch) || raw[1] != 3 {
		t.Fatalf("batch header = %x", raw[:2])
	}
	p, err := Default().Decode(KindProof, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(p.(Proof), in) {
		t.Errorf("round trip yielded %+v, want %+v", p, in)
	}
}

func TestProofHashSizeMismatch(t *testing.T) {
	bad := ProofEntry{Alg: HashSHA256, Digest: make([]byte, 31)}
	_, err := Default().Encode(Proof{Op: ProofSingle, Entries: []ProofEntry{bad}})
	if !errors.Is(err, ErrHashSizeMismatch) {
		t.Fatalf("encode: got %v, want ErrHashSizeMismatch", err)
	}

	// Declares sha512 but carries only 32 digest bytes.
	raw := append([]byte{byte(ProofSingle), byte(HashSHA512)}, make([]byte, 32)...)
	_, err = Default().Decode(KindProof, raw)
	if !errors.Is(err, ErrHashSizeMismatch) {
		t.Fatalf("decode: got %v, want ErrHashSizeMismatch", err)
	}
}

func TestProofDecodeRejectsMalformed(t *testing.T) {
	good, err := Default().Encode(Proof{Op: ProofSingle, Entries: []ProofEntry{sampleEntry(t, HashSHA256, "x")}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	badSize := append([]byte{}, good[:len(good)-2]...)
	badSize = append(badSize, 3, 1, 2, 3, 0) // size field of 3 bytes

	cases := map[string][]byte{
		"empty":            nil,
		"unknown op":       {0x7F},
		"unknown alg":      {byte(ProofSingle), 0x7F},
		"empty batch":      {byte(ProofBatch), 0},
		"missing count":    {byte(ProofBatch)},
		"truncated fields": good[:len(good)-1],
		"trailing bytes":   append(append([]byte{}, good...), 0xFF),
		"bad size width":   badSize,
	}
	for name, raw := range cases {
		if _, err := Default().Decode(KindProof, raw); err == nil {
			t.Errorf("%s: expected decode error", name)
		} else if kind, ok := ErrorKind(err); !ok || kind != KindProof {
			t.Errorf("%s: error not scoped to proof kind: %v", name, err)
		}
	}
}

func TestHashAlgSum(t *testing.T) {
	for _, alg := range []HashAlg{HashSHA256, HashSHA512, HashSHA3_256} {
		d, err := alg.Sum([]byte("data"))
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if len(d) != alg.Size() {
			t.Errorf("%s digest length = %d, want %d", alg, len(d), alg.Size())
		}
	}
	if _, err := HashAlg(0x7F).Sum(nil); err == nil {
		t.Error("unknown algorithm must not hash")
	}
	if HashAlg(0x7F).Size() != 0 {
		t.Error("unknown algorithm size must be 0")
	}
}

func TestProofFieldTooLong(t *testing.T) {
	e := sampleEntry(t, HashSHA256, "x")
	e.Description = string(bytes.Repeat([]byte{'a'}, 256))
	if _, err := Default().Encode(Proof{Op: ProofSingle, Entries: []ProofEntry{e}}); err == nil {
		t.Fatal("expected encode error for oversized field")
	}
}
