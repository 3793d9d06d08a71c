// Package body implements the per-kind message body sub-formats.
//
// The frame codec (package wire) carries bodies verbatim; this package
// gives each kind its typed payload and binary form. The registry's only
// contract is that Decode(Encode(x)) == x for every representable value
// of a registered kind, and that malformed input is rejected with a
// kind-scoped error instead of being read out of bounds.
package body

import "fmt"

// Standard kinds 0-10 are reserved by the protocol; kinds 11 and above
// are owned by individual applications. Kind 2 historically appeared
// both as a generic payload and as a pixel-batch state payload; this
// table fixes 2 as the state kind.
const (
	KindGeneric uint8 = 0
	KindText    uint8 = 1
	KindState   uint8 = 2
	KindVote    uint8 = 3
	KindImage   uint8 = 4
	KindGeo     uint8 = 5

	// KindCustomBase is the first application-owned kind value.
	KindCustomBase uint8 = 11

	KindToken uint8 = 20
	KindProof uint8 = 21
)

// Payload is a typed message body. Kind selects the codec that owns its
// binary form.
type Payload interface {
	Kind() uint8
}

// Codec encodes and decodes one kind's payloads. Implementations are
// pure: no I/O, no shared state, safe for concurrent use.
type Codec interface {
	Kind() uint8
	Encode(p Payload) ([]byte, error)
	Decode(raw []byte) (Payload, error)
}

// Opaque is the decode result for kinds with no registered codec. The
// envelope still decodes; callers needing a known kind check for this
// (or consult Registry.Known) themselves.
type Opaque struct {
	RawKind uint8
	Bytes   []byte
}

func (o Opaque) Kind() uint8 { return o.RawKind }

// Registry maps kinds to codecs. It is resolved once at startup and
// read-only afterwards, so adding an application-owned kind never
// touches the frame codec.
type Registry struct {
	codecs map[uint8]Codec
}

// NewRegistry builds a registry from codecs. Duplicate kinds are a
// configuration error.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	m := make(map[uint8]Codec, len(codecs))
	for _, c := range codecs {
		if _, dup := m[c.Kind()]; dup {
			return nil, fmt.Errorf("body: duplicate codec for kind %d", c.Kind())
		}
		m[c.Kind()] = c
	}
	return &Registry{codecs: m}, nil
}

var defaultRegistry = func() *Registry {
	r, err := NewRegistry(textCodec{}, stateCodec{}, tokenCodec{}, proofCodec{})
	if err != nil {
		panic(err)
	}
	return r
}()

// Default returns the registry holding the built-in kind table:
// text (1), state (2), token (20), proof (21).
func Default() *Registry { return defaultRegistry }

// Known reports whether a codec is registered for kind.
func (r *Registry) Known(kind uint8) bool {
	_, ok := r.codecs[kind]
	return ok
}

// Encode serializes p with the codec registered for its kind. Opaque
// payloads pass through verbatim.
func (r *Registry) Encode(p Payload) ([]byte, error) {
	if o, ok := p.(Opaque); ok {
		out := make([]byte, len(o.Bytes))
		copy(out, o.Bytes)
		return out, nil
	}
	c, ok := r.codecs[p.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, p.Kind())
	}
	return c.Encode(p)
}

// Decode interprets raw as a kind body. Unknown kinds yield an Opaque
// payload, never an error: body interpretation failing must not hide
// the successfully decoded envelope.
func (r *Registry) Decode(kind uint8, raw []byte) (Payload, error) {
	c, ok := r.codecs[kind]
	if !ok {
		b := make([]byte, len(raw))
		copy(b, raw)
		return Opaque{RawKind: kind, Bytes: b}, nil
	}
	return c.Decode(raw)
}
