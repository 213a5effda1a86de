package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mistype.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, int64(24), cfg.Seed)
	assert.InDelta(t, 0.25, cfg.Likelihood, 1e-9)
	assert.Equal(t, []string{"change"}, cfg.Modifiers)
	assert.Equal(t, ".mistype", cfg.Out)
	assert.Equal(t, 1, cfg.Parallel)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, int64(24), cfg.Seed)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 7
likelihood: 0.5
modifiers:
  - change
  - remove
interleave: true
max_bugs: 10
out: artifacts
parallel: 4
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.InDelta(t, 0.5, cfg.Likelihood, 1e-9)
	assert.Equal(t, []string{"change", "remove"}, cfg.Modifiers)
	assert.True(t, cfg.Interleave)
	assert.Equal(t, 10, cfg.MaxBugs)
	assert.Equal(t, "artifacts", cfg.Out)
	assert.Equal(t, 4, cfg.Parallel)
}

func TestLoad_RejectsBadLikelihood(t *testing.T) {
	path := writeConfig(t, "likelihood: 1.5\n")

	_, err := Load(path)

	require.ErrorContains(t, err, "likelihood")
}

func TestLoad_RejectsUnknownModifier(t *testing.T) {
	path := writeConfig(t, "modifiers:\n  - flip\n")

	_, err := Load(path)

	require.ErrorContains(t, err, "flip")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "seed: [not a number\n")

	_, err := Load(path)

	require.Error(t, err)
}

func TestConfig_Table_Defaults(t *testing.T) {
	table := Default().Table()

	assert.Equal(t, []string{"str", "float", "bool"}, table.Primitives["int"])
	assert.Contains(t, table.Generic1, "List")
	assert.Contains(t, table.Generic2, "Dict")
}

func TestConfig_Table_Overrides(t *testing.T) {
	path := writeConfig(t, `
primitives:
  int:
    - complex
generic1:
  - Sequence
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	table := cfg.Table()

	// Overridden sections replace their built-in counterpart wholesale.
	assert.Equal(t, []string{"complex"}, table.Primitives["int"])
	assert.NotContains(t, table.Primitives, "str")

	assert.Contains(t, table.Generic1, "Sequence")
	assert.NotContains(t, table.Generic1, "List")

	// Untouched sections keep their defaults.
	assert.Contains(t, table.Generic2, "Dict")
	assert.Equal(t, []string{"int", "bytes", "list"}, table.DictKeys["str"])
}
