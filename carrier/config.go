package carrier

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Carriers []fileCarrier `toml:"carrier"`
}

type fileCarrier struct {
	ID        uint8   `toml:"id"`
	Name      string  `toml:"name"`
	MaxBytes  int     `toml:"max_bytes"`
	FeeWeight float64 `toml:"fee_weight"`
	Overhead  int     `toml:"overhead"`
	Prunable  bool    `toml:"prunable"`
}

// Load reads a carrier table from a TOML file. The file holds one
// [[carrier]] block per embedding method:
//
//	[[carrier]]
//	id = 1
//	name = "op_return"
//	max_bytes = 100000
//	fee_weight = 1.0
//	overhead = 16
//	prunable = true
//
// The loaded table replaces the defaults wholesale; it is not merged.
func Load(path string) (*Table, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("carrier: loading %s: %w", path, err)
	}
	carriers := make([]Carrier, 0, len(cfg.Carriers))
	for _, fc := range cfg.Carriers {
		carriers = append(carriers, Carrier{
			ID:        fc.ID,
			Name:      fc.Name,
			MaxBytes:  fc.MaxBytes,
			FeeWeight: fc.FeeWeight,
			Overhead:  fc.Overhead,
			Prunable:  fc.Prunable,
		})
	}
	t, err := NewTable(carriers)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}
