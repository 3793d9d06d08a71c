// Package carrier classifies the embedding methods a message can ride in
// and projects their approximate cost.
//
// Carriers are static configuration: the table is loaded once at process
// start (from the built-in defaults or a TOML file) and read-only for the
// process lifetime, so it may be shared freely across goroutines.
package carrier

import (
	"errors"
	"fmt"

	"seamark.dev/seamark/wire"
)

// ErrCarrierOverflow reports a payload that does not fit the chosen
// carrier. It is a pre-flight check failure: nothing is truncated and no
// previously valid message is affected.
var ErrCarrierOverflow = errors.New("carrier: payload exceeds carrier capacity")

// Carrier describes one embedding method.
type Carrier struct {
	ID   uint8
	Name string

	// MaxBytes is the capacity available to an encoded message.
	MaxBytes int

	// FeeWeight is the fee cost per payload byte relative to plain byte
	// count (witness-discounted carriers sit below 1).
	FeeWeight float64

	// Overhead is the carrier-specific transaction overhead in bytes.
	Overhead int

	// Prunable marks data full nodes may discard after spend.
	Prunable bool
}

// Fits reports whether a payload of payloadSize bytes fits c. It is a
// pure capacity check; callers account for envelope overhead themselves
// (Recommend and Validate do).
func Fits(c Carrier, payloadSize int) bool {
	return payloadSize >= 0 && payloadSize <= c.MaxBytes
}

// Table is an immutable set of carriers.
type Table struct {
	carriers []Carrier
}

// NewTable validates carriers and builds a table. IDs and names must be
// unique, capacities positive, fee weights positive.
func NewTable(carriers []Carrier) (*Table, error) {
	if len(carriers) == 0 {
		return nil, errors.New("carrier: empty table")
	}
	ids := make(map[uint8]bool, len(carriers))
	names := make(map[string]bool, len(carriers))
	for _, c := range carriers {
		if c.Name == "" {
			return nil, fmt.Errorf("carrier: carrier %d has no name", c.ID)
		}
		if c.MaxBytes <= 0 {
			return nil, fmt.Errorf("carrier: %s has non-positive capacity", c.Name)
		}
		if c.FeeWeight <= 0 {
			return nil, fmt.Errorf("carrier: %s has non-positive fee weight", c.Name)
		}
		if c.Overhead < 0 {
			return nil, fmt.Errorf("carrier: %s has negative overhead", c.Name)
		}
		if ids[c.ID] {
			return nil, fmt.Errorf("carrier: duplicate id %d", c.ID)
		}
		if names[c.Name] {
			return nil, fmt.Errorf("carrier: duplicate name %q", c.Name)
		}
		ids[c.ID] = true
		names[c.Name] = true
	}
	return &Table{carriers: append([]Carrier(nil), carriers...)}, nil
}

var defaultTable = func() *Table {
	t, err := NewTable([]Carrier{
		{ID: 1, Name: "op_return", MaxBytes: 100_000, FeeWeight: 1, Overhead: 16, Prunable: true},
		{ID: 2, Name: "inscription", MaxBytes: 3_900_000, FeeWeight: 0.25, Overhead: 140, Prunable: true},
		{ID: 3, Name: "witness", MaxBytes: 3_900_000, FeeWeight: 0.25, Overhead: 110, Prunable: true},
		{ID: 4, Name: "bare_output", MaxBytes: 8_000, FeeWeight: 1, Overhead: 48, Prunable: false},
	})
	if err != nil {
		panic(err)
	}
	return t
}()

// DefaultTable returns the built-in carrier table.
func DefaultTable() *Table { return defaultTable }

// Carriers returns a copy of the table entries.
func (t *Table) Carriers() []Carrier {
	return append([]Carrier(nil), t.carriers...)
}

// ByID looks a carrier up by id.
func (t *Table) ByID(id uint8) (Carrier, bool) {
	for _, c := range t.carriers {
		if c.ID == id {
			return c, true
		}
	}
	return Carrier{}, false
}

// ByName looks a carrier up by name.
func (t *Table) ByName(name string) (Carrier, bool) {
	for _, c := range t.carriers {
		if c.Name == name {
			return c, true
		}
	}
	return Carrier{}, false
}

// Recommend picks the cheapest carrier that can hold a body of
// payloadSize bytes plus the envelope overhead for anchorCount anchors.
// When nothing fits it falls back to the highest-capacity carrier; the
// caller's Validate check still decides whether that is acceptable.
func (t *Table) Recommend(payloadSize, anchorCount int) Carrier {
	total := payloadSize + wire.Overhead(anchorCount)

	var best Carrier
	found := false
	for _, c := range t.carriers {
		if !Fits(c, total) {
			continue
		}
		if !found || cheaper(c, best, total) {
			best = c
			found = true
		}
	}
	if found {
		return best
	}

	// Fallback: largest capacity, lowest id on ties.
	best = t.carriers[0]
	for _, c := range t.carriers[1:] {
		if c.MaxBytes > best.MaxBytes || (c.MaxBytes == best.MaxBytes && c.ID < best.ID) {
			best = c
		}
	}
	return best
}

func cheaper(a, b Carrier, total int) bool {
	ca, cb := Estimate(a, total, 1), Estimate(b, total, 1)
	if ca != cb {
		return ca < cb
	}
	return a.ID < b.ID
}

// Validate is the pre-flight capacity check for an explicit carrier
// choice. It must pass before any encode is considered final.
func Validate(c Carrier, payloadSize, anchorCount int) error {
	total := payloadSize + wire.Overhead(anchorCount)
	if !Fits(c, total) {
		return fmt.Errorf("%w: %d bytes in %s (max %d)", ErrCarrierOverflow, total, c.Name, c.MaxBytes)
	}
	return nil
}
