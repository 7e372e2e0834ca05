// Package modelconfig owns the per-profile scoring weight tables.
// The compiled defaults can be overridden from a YAML file; either way
// every table is normalized before use and hashable for audit records.
package modelconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/folio/internal/contracts"
)

// WeightTable maps each risk profile to its model weights.
type WeightTable struct {
	Low    contracts.ModelWeights `yaml:"low" json:"low"`
	Medium contracts.ModelWeights `yaml:"medium" json:"medium"`
	High   contracts.ModelWeights `yaml:"high" json:"high"`
}

// Defaults returns the built-in weight table.
//
// Low risk leans on fundamentals and penalizes volatility and beta;
// high risk leans on returns, growth and sentiment.
func Defaults() WeightTable {
	return WeightTable{
		Low: contracts.ModelWeights{
			Alpha: 0.15, Beta: 0.15, Gamma: 0.30, Delta: 0.20, Epsilon: 0.15, Zeta: 0.05,
			W1: 0.15, W2: 0.30, W3: 0.20, W4: 0.15, W5: 0.20,
		},
		Medium: contracts.ModelWeights{
			Alpha: 0.20, Beta: 0.20, Gamma: 0.30, Delta: 0.10, Epsilon: 0.10, Zeta: 0.10,
			W1: 0.20, W2: 0.20, W3: 0.20, W4: 0.20, W5: 0.20,
		},
		High: contracts.ModelWeights{
			Alpha: 0.30, Beta: 0.30, Gamma: 0.15, Delta: 0.05, Epsilon: 0.05, Zeta: 0.15,
			W1: 0.25, W2: 0.10, W3: 0.25, W4: 0.20, W5: 0.20,
		},
	}
}

// Load reads a weight table from a YAML file. An empty path returns the
// compiled defaults. Unknown YAML fields fail immediately so a typo in an
// override file cannot silently fall back to a default weight.
func Load(path string) (WeightTable, error) {
	if path == "" {
		return normalize(Defaults()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return WeightTable{}, fmt.Errorf("failed to read weights file: %w", err)
	}

	var table WeightTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return WeightTable{}, fmt.Errorf("failed to parse weights file: %w", err)
	}

	table = normalize(table)
	if err := validate(table); err != nil {
		return WeightTable{}, err
	}

	return table, nil
}

// For returns the weights for the given profile. Unknown profiles get the
// medium table.
func (t WeightTable) For(profile contracts.RiskProfile) contracts.ModelWeights {
	switch profile {
	case contracts.RiskLow:
		return t.Low
	case contracts.RiskHigh:
		return t.High
	default:
		return t.Medium
	}
}

// Hash generates a SHA256 hash of the table via canonical JSON. Struct
// marshaling keeps field order deterministic, so the hash is reproducible.
func Hash(t WeightTable) (string, error) {
	jsonBytes, err := json.Marshal(t)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

func normalize(t WeightTable) WeightTable {
	t.Low = t.Low.Normalize()
	t.Medium = t.Medium.Normalize()
	t.High = t.High.Normalize()
	return t
}

func validate(t WeightTable) error {
	for _, p := range []struct {
		name    string
		weights contracts.ModelWeights
	}{
		{"low", t.Low},
		{"medium", t.Medium},
		{"high", t.High},
	} {
		if err := p.weights.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", p.name, err)
		}
	}
	return nil
}
