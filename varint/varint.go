// Package varint implements the base-128 continuation-flagged integer
// encoding used by size-sensitive body sub-formats (token amounts,
// supply limits).
//
// Values are arbitrary-precision and non-negative. Each byte carries 7
// significant bits, least-significant group first, with the high bit set
// on every byte except the last.
package varint

import (
	"errors"
	"fmt"
	"math/big"
)

// MaxBits bounds the accepted value width. A sequence whose continuation
// bit is still set after the shift passes MaxBits is rejected, so an
// adversarial run of continuation bytes cannot force an unbounded read.
const MaxBits = 128

var (
	ErrInvalidVarint = errors.New("varint: invalid varint")
	ErrNegative      = errors.New("varint: negative value")
)

// Append appends the encoding of n to dst and returns the extended slice.
// n must be non-negative.
func Append(dst []byte, n *big.Int) ([]byte, error) {
	if n == nil || n.Sign() < 0 {
		return dst, ErrNegative
	}
	x := new(big.Int).Set(n)
	low := new(big.Int)
	mask := big.NewInt(0x7f)
	for {
		group := byte(low.And(x, mask).Int64())
		x.Rsh(x, 7)
		if x.Sign() != 0 {
			group |= 0x80
		}
		dst = append(dst, group)
		if x.Sign() == 0 {
			return dst, nil
		}
	}
}

// Encode returns the encoding of a non-negative n.
func Encode(n *big.Int) ([]byte, error) {
	return Append(nil, n)
}

// Decode reads one value from buf starting at offset and returns the value
// and the number of bytes consumed. It returns ErrInvalidVarint when the
// continuation bit never clears within the MaxBits width, or when the input
// ends mid-sequence.
func Decode(buf []byte, offset int) (*big.Int, int, error) {
	if offset < 0 || offset > len(buf) {
		return nil, 0, fmt.Errorf("%w: offset %d out of range", ErrInvalidVarint, offset)
	}
	v := new(big.Int)
	group := new(big.Int)
	var shift uint
	for i := offset; ; i++ {
		if shift > MaxBits {
			return nil, 0, fmt.Errorf("%w: exceeds %d bits", ErrInvalidVarint, MaxBits)
		}
		if i >= len(buf) {
			return nil, 0, fmt.Errorf("%w: truncated", ErrInvalidVarint)
		}
		b := buf[i]
		group.SetInt64(int64(b & 0x7f))
		group.Lsh(group, shift)
		v.Or(v, group)
		if b&0x80 == 0 {
			return v, i - offset + 1, nil
		}
		shift += 7
	}
}

// AppendAll appends the encodings of ns back-to-back.
func AppendAll(dst []byte, ns ...*big.Int) ([]byte, error) {
	var err error
	for i, n := range ns {
		dst, err = Append(dst, n)
		if err != nil {
			return dst, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return dst, nil
}

// DecodeAll reads count values back-to-back from buf starting at offset and
// returns them with the total number of bytes consumed, so callers can
// advance a shared cursor.
func DecodeAll(buf []byte, offset, count int) ([]*big.Int, int, error) {
	out := make([]*big.Int, 0, count)
	total := 0
	for i := 0; i < count; i++ {
		v, n, err := Decode(buf, offset+total)
		if err != nil {
			return nil, 0, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, v)
		total += n
	}
	return out, total, nil
}
