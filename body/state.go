package body

import "encoding/binary"

// StateRecord is one pixel update: a canvas position and an RGBA color.
// Records pack to 8 bytes: x(2,BE) y(2,BE) r g b a.
type StateRecord struct {
	X, Y       uint16
	R, G, B, A uint8
}

// State is a batch of pixel updates (kind 2), applied in order.
//
// Wire form: count(4,BE) | record[0..count].
type State struct {
	Records []StateRecord
}

func (State) Kind() uint8 { return KindState }

const stateRecordSize = 8

type stateCodec struct{}

func (stateCodec) Kind() uint8 { return KindState }

func (stateCodec) Encode(p Payload) ([]byte, error) {
	s, ok := p.(State)
	if !ok {
		return nil, newError(KindState, "payload is not State")
	}
	out := make([]byte, 4, 4+len(s.Records)*stateRecordSize)
	binary.BigEndian.PutUint32(out, uint32(len(s.Records)))
	for _, r := range s.Records {
		out = binary.BigEndian.AppendUint16(out, r.X)
		out = binary.BigEndian.AppendUint16(out, r.Y)
		out = append(out, r.R, r.G, r.B, r.A)
	}
	return out, nil
}

func (stateCodec) Decode(raw []byte) (Payload, error) {
	if len(raw) < 4 {
		return nil, newError(KindState, "missing record count")
	}
	count := binary.BigEndian.Uint32(raw)
	want := 4 + uint64(count)*stateRecordSize
	if uint64(len(raw)) < want {
		return nil, newError(KindState, "truncated record region")
	}
	if uint64(len(raw)) > want {
		return nil, newError(KindState, "trailing bytes after records")
	}
	var records []StateRecord
	if count > 0 {
		records = make([]StateRecord, 0, count)
	}
	off := 4
	for i := uint32(0); i < count; i++ {
		records = append(records, StateRecord{
			X: binary.BigEndian.Uint16(raw[off:]),
			Y: binary.BigEndian.Uint16(raw[off+2:]),
			R: raw[off+4],
			G: raw[off+5],
			B: raw[off+6],
			A: raw[off+7],
		})
		off += stateRecordSize
	}
	return State{Records: records}, nil
}
