package cost

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseWeights parses a YAML function weight table, a flat mapping from
// function name to weight:
//
//	sin: 50
//	cos: 50
//	sqrt: 20
//
// Listed names override the defaults; unlisted defaults are kept.
func ParseWeights(data []byte) (map[string]int, error) {
	var table map[string]int
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing weight table: %w", err)
	}
	weights := DefaultWeights()
	for name, w := range table {
		if w < 0 {
			return nil, fmt.Errorf("weight for %q is negative", name)
		}
		weights[name] = w
	}
	return weights, nil
}

// LoadWeights reads a YAML function weight table from a file.
func LoadWeights(filename string) (map[string]int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading weight table: %w", err)
	}
	return ParseWeights(data)
}
