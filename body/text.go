package body

import "strings"

// Text is a human-readable UTF-8 payload (kind 1).
type Text struct {
	Value string
}

func (Text) Kind() uint8 { return KindText }

type textCodec struct{}

func (textCodec) Kind() uint8 { return KindText }

func (textCodec) Encode(p Payload) ([]byte, error) {
	t, ok := p.(Text)
	if !ok {
		return nil, newError(KindText, "payload is not Text")
	}
	return []byte(t.Value), nil
}

// Decode is permissive: a display kind is best-effort, so invalid UTF-8
// sequences are replaced rather than rejected. Text decoding never fails.
func (textCodec) Decode(raw []byte) (Payload, error) {
	return Text{Value: strings.ToValidUTF8(string(raw), "�")}, nil
}
