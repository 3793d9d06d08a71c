package body

import (
	"fmt"
	"math/big"

	"seamark.dev/seamark/varint"
)

// TokenOp is a fungible-token operation opcode.
type TokenOp uint8

const (
	TokenDeploy   TokenOp = 0x01
	TokenMint     TokenOp = 0x02
	TokenTransfer TokenOp = 0x03
	TokenBurn     TokenOp = 0x04
)

func (op TokenOp) String() string {
	switch op {
	case TokenDeploy:
		return "deploy"
	case TokenMint:
		return "mint"
	case TokenTransfer:
		return "transfer"
	case TokenBurn:
		return "burn"
	default:
		return fmt.Sprintf("token-op(0x%02x)", uint8(op))
	}
}

// arity returns how many varint amounts the opcode carries, or -1 for an
// unknown opcode. Deploy carries max supply and per-mint limit; the rest
// carry a single amount.
func (op TokenOp) arity() int {
	switch op {
	case TokenDeploy:
		return 2
	case TokenMint, TokenTransfer, TokenBurn:
		return 1
	default:
		return -1
	}
}

// Token is a fungible-token operation (kind 20).
//
// Wire form: op(1) | varint amounts, back-to-back. Amounts are
// arbitrary-precision and non-negative.
type Token struct {
	Op      TokenOp
	Amounts []*big.Int
}

func (Token) Kind() uint8 { return KindToken }

type tokenCodec struct{}

func (tokenCodec) Kind() uint8 { return KindToken }

func (tokenCodec) Encode(p Payload) ([]byte, error) {
	t, ok := p.(Token)
	if !ok {
		return nil, newError(KindToken, "payload is not Token")
	}
	n := t.Op.arity()
	if n < 0 {
		return nil, newError(KindToken, "unknown opcode "+t.Op.String())
	}
	if len(t.Amounts) != n {
		return nil, newError(KindToken, fmt.Sprintf("%s takes %d amounts, got %d", t.Op, n, len(t.Amounts)))
	}
	out, err := varint.AppendAll([]byte{byte(t.Op)}, t.Amounts...)
	if err != nil {
		return nil, wrapError(KindToken, "encoding amounts", err)
	}
	return out, nil
}

func (tokenCodec) Decode(raw []byte) (Payload, error) {
	if len(raw) < 1 {
		return nil, newError(KindToken, "missing opcode")
	}
	op := TokenOp(raw[0])
	n := op.arity()
	if n < 0 {
		return nil, newError(KindToken, "unknown opcode "+op.String())
	}
	amounts, consumed, err := varint.DecodeAll(raw, 1, n)
	if err != nil {
		return nil, wrapError(KindToken, "decoding amounts", err)
	}
	if 1+consumed != len(raw) {
		return nil, newError(KindToken, "trailing bytes after amounts")
	}
	return Token{Op: op, Amounts: amounts}, nil
}
