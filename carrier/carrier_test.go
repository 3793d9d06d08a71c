package carrier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seamark.dev/seamark/wire"
)

func TestFitsCapacityBoundary(t *testing.T) {
	for _, c := range DefaultTable().Carriers() {
		assert.True(t, Fits(c, c.MaxBytes), "%s at capacity", c.Name)
		assert.False(t, Fits(c, c.MaxBytes+1), "%s one past capacity", c.Name)
		assert.True(t, Fits(c, 0), "%s empty payload", c.Name)
		assert.False(t, Fits(c, -1), "%s negative size", c.Name)
	}
}

func TestRecommendPrefersCheapest(t *testing.T) {
	table := DefaultTable()

	// A tiny root message rides the cheap low-overhead carrier.
	small := table.Recommend(80, 0)
	assert.Equal(t, "op_return", small.Name)

	// Large payloads shift to the fee-discounted carriers.
	large := table.Recommend(500_000, 2)
	assert.Equal(t, 0.25, large.FeeWeight)
	assert.True(t, Fits(large, 500_000+wire.Overhead(2)))
}

func TestRecommendAccountsForEnvelopeOverhead(t *testing.T) {
	table, err := NewTable([]Carrier{
		{ID: 1, Name: "tight", MaxBytes: 100, FeeWeight: 1, Prunable: true},
		{ID: 2, Name: "roomy", MaxBytes: 10_000, FeeWeight: 2, Prunable: true},
	})
	require.NoError(t, err)

	// 94 payload bytes + 6 envelope bytes exactly fill the tight carrier.
	assert.Equal(t, "tight", table.Recommend(94, 0).Name)
	// One anchor adds 9 bytes and pushes it over.
	assert.Equal(t, "roomy", table.Recommend(94, 1).Name)
}

func TestRecommendFallsBackToLargest(t *testing.T) {
	got := DefaultTable().Recommend(50_000_000, 0)
	assert.Equal(t, 3_900_000, got.MaxBytes)
	// Ties on capacity break toward the lower id.
	assert.Equal(t, uint8(2), got.ID)
}

func TestValidateOverflow(t *testing.T) {
	c, ok := DefaultTable().ByName("bare_output")
	require.True(t, ok)

	assert.NoError(t, Validate(c, 7_000, 3))
	err := Validate(c, c.MaxBytes, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCarrierOverflow)
	// The failed pre-flight check reports overflow, never truncates.
	assert.NoError(t, Validate(c, c.MaxBytes-wire.Overhead(0), 0))
}

func TestEstimateOrdering(t *testing.T) {
	table := DefaultTable()
	opReturn, _ := table.ByName("op_return")
	witness, _ := table.ByName("witness")

	// Small payloads: flat overhead dominates, op_return wins.
	assert.Less(t, Estimate(opReturn, 50, 2), Estimate(witness, 50, 2))
	// Large payloads: the witness discount dominates.
	assert.Greater(t, Estimate(opReturn, 10_000, 2), Estimate(witness, 10_000, 2))

	// Linear in the fee rate.
	assert.Equal(t, 2*Estimate(witness, 1000, 5), Estimate(witness, 1000, 10))

	assert.Zero(t, Estimate(opReturn, -1, 2))
	assert.Zero(t, Estimate(opReturn, 100, 0))
}

func TestNewTableValidation(t *testing.T) {
	valid := Carrier{ID: 1, Name: "a", MaxBytes: 10, FeeWeight: 1}
	cases := map[string][]Carrier{
		"empty":          {},
		"missing name":   {{ID: 1, MaxBytes: 10, FeeWeight: 1}},
		"zero capacity":  {{ID: 1, Name: "a", FeeWeight: 1}},
		"zero weight":    {{ID: 1, Name: "a", MaxBytes: 10}},
		"duplicate id":   {valid, {ID: 1, Name: "b", MaxBytes: 10, FeeWeight: 1}},
		"duplicate name": {valid, {ID: 2, Name: "a", MaxBytes: 10, FeeWeight: 1}},
	}
	for name, carriers := range cases {
		_, err := NewTable(carriers)
		assert.Error(t, err, name)
	}
}

func TestLoadTableFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carriers.toml")
	doc := `
[[carrier]]
id = 1
name = "op_return"
max_bytes = 80
fee_weight = 1.0
overhead = 16
prunable = true

[[carrier]]
id = 9
name = "sidecar"
max_bytes = 1000000
fee_weight = 0.5
overhead = 64
prunable = false
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table.Carriers(), 2)

	sidecar, ok := table.ByID(9)
	require.True(t, ok)
	assert.Equal(t, "sidecar", sidecar.Name)
	assert.Equal(t, 0.5, sidecar.FeeWeight)
	assert.False(t, sidecar.Prunable)

	// The loaded table replaces the defaults wholesale.
	_, ok = table.ByName("inscription")
	assert.False(t, ok)
}

func TestLoadRejectsBadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carriers.toml")
	doc := `
[[carrier]]
id = 1
name = "a"
max_bytes = 0
fee_weight = 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
