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
	path := filepath.Join(t.TempDir(), "pogen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "purchase_orders.csv", cfg.OutputFile)
	assert.Equal(t, 10000, cfg.DefaultCount)
	assert.Equal(t, 1000000, cfg.MaxCount)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_missingDefaultFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "pogen.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_missingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_values(t *testing.T) {
	path := writeConfig(t, `
output_dir: ./out
output_file: po_{count}.csv
default_count: 250
seed: 99
log_level: debug
write_xlsx: true
server:
  addr: ":9090"
  csv_path: ./out/po.csv
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "./out", cfg.OutputDir)
	assert.Equal(t, "po_{count}.csv", cfg.OutputFile)
	assert.Equal(t, 250, cfg.DefaultCount)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.WriteXLSX)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "./out/po.csv", cfg.Server.CSVPath)
}

func TestLoad_invalid(t *testing.T) {
	cases := map[string]string{
		"log level":         "log_level: verbose\n",
		"count":             "default_count: -5\n",
		"path in name":      "output_file: sub/po.csv\n",
		"max below default": "default_count: 500\nmax_count: 100\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoad_maxCountFollowsDefaultCount(t *testing.T) {
	cfg, err := Load(writeConfig(t, "default_count: 2000000\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 2000000, cfg.MaxCount)

	_, err = Load(writeConfig(t, "max_count: 5000\n"), true)
	require.Error(t, err, "max_count below the default default_count")

	cfg, err = Load(writeConfig(t, "default_count: 10\nmax_count: 5000\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.MaxCount)
}

func TestLoad_malformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "output_dir: [unterminated\n"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_exampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "pogen.example.yaml"), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
