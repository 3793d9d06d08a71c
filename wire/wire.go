// Package wire implements the outer envelope of embedded messages.
//
// Wire format, byte-exact:
//
//	MAGIC(4) | KIND(1) | ANCHOR_COUNT(1) | ANCHOR[0..count] | BODY
//
// with each anchor serialized as an 8-byte transaction-id prefix followed
// by a 1-byte output index. The body is carried verbatim and never
// interpreted here; package body owns the per-kind sub-formats.
package wire

import "fmt"

// Magic identifies the protocol. The low nibble carries the protocol
// version; a future version bump is a new magic constant, not a field.
var Magic = [4]byte{0xA1, 0x1C, 0x00, 0x01}

const (
	// PrefixLen is the length of a truncated parent transaction id.
	PrefixLen = 8

	// AnchorSize is the serialized size of one anchor.
	AnchorSize = PrefixLen + 1

	// HeaderSize is the fixed envelope prefix: magic, kind, anchor count.
	HeaderSize = len(Magic) + 1 + 1

	// MaxAnchors is the maximum number of anchors one message can carry.
	MaxAnchors = 255
)

// Anchor is a truncated reference to a parent message's transaction:
// the leading 64 bits of the parent's transaction identifier plus the
// output index the parent message was embedded in.
type Anchor struct {
	TxPrefix [PrefixLen]byte
	Vout     uint8
}

// Message is the decoded unit. A message with no anchors is a root;
// anchors mark it as a reply or derivation, in protocol order.
//
// Messages are immutable by convention: Encode and Decode construct
// fresh values and never retain or alias caller slices.
type Message struct {
	Kind    uint8
	Anchors []Anchor
	Body    []byte
}

// Root reports whether the message carries no parent references.
func (m *Message) Root() bool { return len(m.Anchors) == 0 }

// EncodedSize returns the exact encoded length of the message.
func (m *Message) EncodedSize() int {
	return HeaderSize + len(m.Anchors)*AnchorSize + len(m.Body)
}

// Overhead returns the fixed envelope overhead for a message carrying
// anchorCount anchors, excluding the body.
func Overhead(anchorCount int) int {
	return HeaderSize + anchorCount*AnchorSize
}

// Encode serializes a message. It fails only when the anchor list exceeds
// MaxAnchors; every other input is encodable.
func Encode(kind uint8, anchors []Anchor, body []byte) ([]byte, error) {
	if len(anchors) > MaxAnchors {
		return nil, fmt.Errorf("%w: %d anchors", ErrAnchorListTooLarge, len(anchors))
	}
	out := make([]byte, 0, HeaderSize+len(anchors)*AnchorSize+len(body))
	out = append(out, Magic[:]...)
	out = append(out, kind, uint8(len(anchors)))
	for _, a := range anchors {
		out = append(out, a.TxPrefix[:]...)
		out = append(out, a.Vout)
	}
	out = append(out, body...)
	return out, nil
}

// EncodeMessage serializes m. See Encode.
func EncodeMessage(m *Message) ([]byte, error) {
	return Encode(m.Kind, m.Anchors, m.Body)
}

// Decode parses raw bytes into a Message. Envelope errors abort with no
// partial result. An unknown kind is not an envelope error: the body is
// returned verbatim and interpreting it is deferred to the body codecs.
func Decode(raw []byte) (*Message, error) {
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooShort, len(raw))
	}
	if raw[0] != Magic[0] || raw[1] != Magic[1] || raw[2] != Magic[2] || raw[3] != Magic[3] {
		return nil, fmt.Errorf("%w: %02x%02x%02x%02x", ErrInvalidMagic, raw[0], raw[1], raw[2], raw[3])
	}
	kind := raw[4]
	count := int(raw[5])
	if len(raw) < HeaderSize+count*AnchorSize {
		return nil, fmt.Errorf("%w: %d anchors declared, %d bytes available",
			ErrTruncatedAnchors, count, len(raw)-HeaderSize)
	}

	anchors := make([]Anchor, 0, count)
	off := HeaderSize
	for i := 0; i < count; i++ {
		var a Anchor
		copy(a.TxPrefix[:], raw[off:off+PrefixLen])
		a.Vout = raw[off+PrefixLen]
		anchors = append(anchors, a)
		off += AnchorSize
	}

	body := make([]byte, len(raw)-off)
	copy(body, raw[off:])

	return &Message{Kind: kind, Anchors: anchors, Body: body}, nil
}
