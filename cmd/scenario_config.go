package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/delivery-sim/delivery-sim/sim"
)

// LoadScenario reads a YAML scenario file into a sim.Config. Fields the
// file omits keep their DefaultConfig values. Validation happens later,
// in NewSimulator, after flag overrides are applied.
func LoadScenario(path string) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
