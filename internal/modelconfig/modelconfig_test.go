package modelconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/contracts"
)

func TestDefaults_AllProfilesNormalized(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)

	for _, profile := range []contracts.RiskProfile{
		contracts.RiskLow, contracts.RiskMedium, contracts.RiskHigh,
	} {
		w := table.For(profile)
		assert.NoError(t, w.Validate(), "profile %s", profile)
	}
}

func TestFor_UnknownProfileFallsBackToMedium(t *testing.T) {
	table := Defaults()
	assert.Equal(t, table.Medium, table.For(contracts.RiskProfile("unknown")))
}

func TestLoad_YAMLOverride(t *testing.T) {
	yaml := `
low:
  alpha: 0.1
  beta: 0.1
  gamma: 0.4
  delta: 0.2
  epsilon: 0.15
  zeta: 0.05
  w1: 0.2
  w2: 0.2
  w3: 0.2
  w4: 0.2
  w5: 0.2
medium:
  alpha: 0.2
  beta: 0.2
  gamma: 0.3
  delta: 0.1
  epsilon: 0.1
  zeta: 0.1
  w1: 0.2
  w2: 0.2
  w3: 0.2
  w4: 0.2
  w5: 0.2
high:
  alpha: 0.3
  beta: 0.3
  gamma: 0.15
  delta: 0.05
  epsilon: 0.05
  zeta: 0.15
  w1: 0.2
  w2: 0.2
  w3: 0.2
  w4: 0.2
  w5: 0.2
`
	path := writeTempYAML(t, yaml)

	table, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, table.Low.Gamma, 1e-9)
}

func TestLoad_UnnormalizedWeightsAreRescaled(t *testing.T) {
	// Factor weights sum to 2.0, sub-weights to 0.5. Load must rescale.
	yaml := `
low:
  alpha: 0.4
  beta: 0.4
  gamma: 0.6
  delta: 0.2
  epsilon: 0.2
  zeta: 0.2
  w1: 0.1
  w2: 0.1
  w3: 0.1
  w4: 0.1
  w5: 0.1
medium:
  alpha: 0.2
  beta: 0.2
  gamma: 0.3
  delta: 0.1
  epsilon: 0.1
  zeta: 0.1
  w1: 0.2
  w2: 0.2
  w3: 0.2
  w4: 0.2
  w5: 0.2
high:
  alpha: 0.3
  beta: 0.3
  gamma: 0.15
  delta: 0.05
  epsilon: 0.05
  zeta: 0.15
  w1: 0.2
  w2: 0.2
  w3: 0.2
  w4: 0.2
  w5: 0.2
`
	path := writeTempYAML(t, yaml)

	table, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, table.Low.Validate())
	assert.InDelta(t, 0.3, table.Low.Gamma, 1e-9)
	assert.InDelta(t, 0.2, table.Low.W1, 1e-9)
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	yaml := `
low:
  alpha: 0.2
  unknown_knob: 1.0
`
	path := writeTempYAML(t, yaml)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/weights.yaml")
	assert.Error(t, err)
}

func TestHash_Deterministic(t *testing.T) {
	table := Defaults()

	h1, err := Hash(table)
	require.NoError(t, err)
	h2, err := Hash(table)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	// Any weight change must change the hash.
	table.Low.Alpha += 0.01
	h3, err := Hash(table)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
