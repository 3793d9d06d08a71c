package body

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HashAlg identifies the digest algorithm of a proof entry. The digest
// length on the wire is fixed by the algorithm.
type HashAlg uint8

const (
	HashSHA256   HashAlg = 0x01
	HashSHA512   HashAlg = 0x02
	HashSHA3_256 HashAlg = 0x03
)

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (a HashAlg) Size() int {
	switch a {
	case HashSHA256, HashSHA3_256:
		return 32
	case HashSHA512:
		return 64
	default:
		return 0
	}
}

func (a HashAlg) String() string {
	switch a {
	case HashSHA256:
		return "sha256"
	case HashSHA512:
		return "sha512"
	case HashSHA3_256:
		return "sha3-256"
	default:
		return fmt.Sprintf("hash-alg(0x%02x)", uint8(a))
	}
}

// Sum computes the digest of data under a.
func (a HashAlg) Sum(data []byte) ([]byte, error) {
	switch a {
	case HashSHA256:
		d := sha256.Sum256(data)
		return d[:], nil
	case HashSHA512:
		d := sha512.Sum512(data)
		return d[:], nil
	case HashSHA3_256:
		d := sha3.Sum256(data)
		return d[:], nil
	default:
		return nil, fmt.Errorf("body: unknown hash algorithm %s", a)
	}
}

// ProofOp selects the proof operation.
type ProofOp uint8

const (
	ProofSingle ProofOp = 0x01
	ProofBatch  ProofOp = 0x02
)

// ProofEntry is one existence claim: a digest plus optional descriptive
// metadata. Absent string fields are empty; Size is only meaningful when
// HasSize is set (zero is a valid file size).
type ProofEntry struct {
	Alg    HashAlg
	Digest []byte

	Filename    string
	MIME        string
	HasSize     bool
	Size        uint64
	Description string
}

// NewProofEntry hashes data under alg and returns an entry with an empty
// metadata block.
func NewProofEntry(alg HashAlg, data []byte) (ProofEntry, error) {
	digest, err := alg.Sum(data)
	if err != nil {
		return ProofEntry{}, err
	}
	return ProofEntry{Alg: alg, Digest: digest}, nil
}

// Proof is a proof-of-existence record (kind 21). A single operation
// carries exactly one entry; a batch carries 1-255 entries behind a
// 1-byte entry count.
//
// Wire form:
//
//	op(1) | entry                      (single)
//	op(1) | count(1) | entry[0..count] (batch)
//
// with each entry as alg(1) | digest(alg-dependent) | metadata. The
// metadata block is four length-prefixed fields in fixed order: filename,
// MIME type, 8-byte big-endian size, description. A 0-length prefix means
// the field is absent, not an error.
type Proof struct {
	Op      ProofOp
	Entries []ProofEntry
}

func (Proof) Kind() uint8 { return KindProof }

const maxProofField = 255

type proofCodec struct{}

func (proofCodec) Kind() uint8 { return KindProof }

func (proofCodec) Encode(p Payload) ([]byte, error) {
	pr, ok := p.(Proof)
	if !ok {
		return nil, newError(KindProof, "payload is not Proof")
	}
	var out []byte
	switch pr.Op {
	case ProofSingle:
		if len(pr.Entries) != 1 {
			return nil, newError(KindProof, fmt.Sprintf("single proof takes 1 entry, got %d", len(pr.Entries)))
		}
		out = []byte{byte(ProofSingle)}
	case ProofBatch:
		if len(pr.Entries) < 1 || len(pr.Entries) > 255 {
			return nil, newError(KindProof, fmt.Sprintf("batch proof takes 1-255 entries, got %d", len(pr.Entries)))
		}
		out = []byte{byte(ProofBatch), byte(len(pr.Entries))}
	default:
		return nil, newError(KindProof, fmt.Sprintf("unknown operation 0x%02x", uint8(pr.Op)))
	}
	var err error
	for i, e := range pr.Entries {
		out, err = appendProofEntry(out, e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return out, nil
}

func appendProofEntry(out []byte, e ProofEntry) ([]byte, error) {
	want := e.Alg.Size()
	if want == 0 {
		return nil, newError(KindProof, "unknown hash algorithm "+e.Alg.String())
	}
	if len(e.Digest) != want {
		return nil, wrapError(KindProof,
			fmt.Sprintf("%s digest is %d bytes, got %d", e.Alg, want, len(e.Digest)),
			ErrHashSizeMismatch)
	}
	out = append(out, byte(e.Alg))
	out = append(out, e.Digest...)

	var err error
	if out, err = appendProofField(out, []byte(e.Filename), "filename"); err != nil {
		return nil, err
	}
	if out, err = appendProofField(out, []byte(e.MIME), "mime type"); err != nil {
		return nil, err
	}
	if e.HasSize {
		out = append(out, 8)
		out = binary.BigEndian.AppendUint64(out, e.Size)
	} else {
		out = append(out, 0)
	}
	if out, err = appendProofField(out, []byte(e.Description), "description"); err != nil {
		return nil, err
	}
	return out, nil
}

func appendProofField(out, field []byte, name string) ([]byte, error) {
	if len(field) > maxProofField {
		return nil, newError(KindProof, fmt.Sprintf("%s longer than %d bytes", name, maxProofField))
	}
	out = append(out, byte(len(field)))
	return append(out, field...), nil
}

func (proofCodec) Decode(raw []byte) (Payload, error) {
	if len(raw) < 1 {
		return nil, newError(KindProof, "missing operation byte")
	}
	op := ProofOp(raw[0])
	var count int
	off := 1
	switch op {
	case ProofSingle:
		count = 1
	case ProofBatch:
		if len(raw) < 2 {
			return nil, newError(KindProof, "missing batch entry count")
		}
		count = int(raw[1])
		if count == 0 {
			return nil, newError(KindProof, "empty batch")
		}
		off = 2
	default:
		return nil, newError(KindProof, fmt.Sprintf("unknown operation 0x%02x", raw[0]))
	}

	entries := make([]ProofEntry, 0, count)
	for i := 0; i < count; i++ {
		e, n, err := decodeProofEntry(raw[off:])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
		off += n
	}
	if off != len(raw) {
		return nil, newError(KindProof, "trailing bytes after entries")
	}
	return Proof{Op: op, Entries: entries}, nil
}

func decodeProofEntry(raw []byte) (ProofEntry, int, error) {
	var e ProofEntry
	if len(raw) < 1 {
		return e, 0, newError(KindProof, "missing hash algorithm")
	}
	e.Alg = HashAlg(raw[0])
	want := e.Alg.Size()
	if want == 0 {
		return e, 0, newError(KindProof, "unknown hash algorithm "+e.Alg.String())
	}
	off := 1
	if len(raw) < off+want {
		return e, 0, wrapError(KindProof,
			fmt.Sprintf("%s digest is %d bytes, %d available", e.Alg, want, len(raw)-off),
			ErrHashSizeMismatch)
	}
	e.Digest = make([]byte, want)
	copy(e.Digest, raw[off:off+want])
	off += want

	field, n, err := decodeProofField(raw[off:], "filename")
	if err != nil {
		return e, 0, err
	}
	e.Filename = string(field)
	off += n

	field, n, err = decodeProofField(raw[off:], "mime type")
	if err != nil {
		return e, 0, err
	}
	e.MIME = string(field)
	off += n

	field, n, err = decodeProofField(raw[off:], "size")
	if err != nil {
		return e, 0, err
	}
	switch len(field) {
	case 0:
	case 8:
		e.HasSize = true
		e.Size = binary.BigEndian.Uint64(field)
	default:
		return e, 0, newError(KindProof, fmt.Sprintf("size field is 8 bytes, got %d", len(field)))
	}
	off += n

	field, n, err = decodeProofField(raw[off:], "description")
	if err != nil {
		return e, 0, err
	}
	e.Description = string(field)
	off += n

	return e, off, nil
}

func decodeProofField(raw []byte, name string) ([]byte, int, error) {
	if len(raw) < 1 {
		return nil, 0, newError(KindProof, "missing "+name+" length")
	}
	n := int(raw[0])
	if len(raw) < 1+n {
		return nil, 0, newError(KindProof, "truncated "+name)
	}
	if n == 0 {
		return nil, 1, nil
	}
	return raw[1 : 1+n], 1 + n, nil
}
