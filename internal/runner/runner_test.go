package runner

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/po-data-generator/internal/generator"
	"github.com/ginjaninja78/po-data-generator/internal/logger"
	"github.com/ginjaninja78/po-data-generator/internal/metrics"
)

func testOptions(t *testing.T, count int) Options {
	t.Helper()
	return Options{
		Count:      count,
		Seed:       1234,
		OutputDir:  t.TempDir(),
		OutputFile: "purchase_orders.csv",
		Clock:      func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) },
	}
}

func TestRun_writesCSV(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	opts := testOptions(t, 100)

	result, err := New(logger.Nop(), m).Run(opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(opts.OutputDir, "purchase_orders.csv"), result.OutputFile)
	assert.Equal(t, 100, result.Records)
	assert.Equal(t, uint64(1234), result.Seed)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.XLSXFile)
	assert.False(t, result.Replaced)
	assert.Equal(t, 100.0, testutil.ToFloat64(m.RecordsGenerated))

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.Bytes, len(data))

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 101)
	assert.Equal(t, generator.Columns, rows[0])
}

func TestRun_singleRecord(t *testing.T) {
	result, err := New(nil, nil).Run(testOptions(t, 1))
	require.NoError(t, err)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), 2)
}

func TestRun_sameSeedSameFile(t *testing.T) {
	a, err := New(nil, nil).Run(testOptions(t, 50))
	require.NoError(t, err)
	b, err := New(nil, nil).Run(testOptions(t, 50))
	require.NoError(t, err)

	first, err := os.ReadFile(a.OutputFile)
	require.NoError(t, err)
	second, err := os.ReadFile(b.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_replacesExistingFile(t *testing.T) {
	opts := testOptions(t, 3)
	first, err := New(nil, nil).Run(opts)
	require.NoError(t, err)
	assert.False(t, first.Replaced)

	opts.Count = 2
	second, err := New(nil, nil).Run(opts)
	require.NoError(t, err)
	assert.True(t, second.Replaced)
	assert.Equal(t, first.OutputFile, second.OutputFile)

	data, err := os.ReadFile(second.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestRun_randomSeed(t *testing.T) {
	opts := testOptions(t, 1)
	opts.Seed = 0

	result, err := New(nil, nil).Run(opts)
	require.NoError(t, err)
	assert.NotZero(t, result.Seed)
}

func TestRun_zeroCountWritesNothing(t *testing.T) {
	opts := testOptions(t, 0)

	_, err := New(nil, nil).Run(opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generator.ErrInvalidCount))

	entries, err := os.ReadDir(opts.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_xlsx(t *testing.T) {
	opts := testOptions(t, 10)
	opts.WriteXLSX = true

	result, err := New(nil, nil).Run(opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.OutputDir, "purchase_orders.xlsx"), result.XLSXFile)
	assert.FileExists(t, result.XLSXFile)
}

func TestRun_xml(t *testing.T) {
	opts := testOptions(t, 4)
	opts.WriteXML = true

	result, err := New(nil, nil).Run(opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.OutputDir, "purchase_orders.xml"), result.XMLFile)

	data, err := os.ReadFile(result.XMLFile)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "<purchaseOrder n="))
	assert.Empty(t, result.XLSXFile)
}

func TestRun_fileNameFormat(t *testing.T) {
	opts := testOptions(t, 3)
	opts.OutputFile = "po_{count}.csv"

	result, err := New(nil, nil).Run(opts)
	require.NoError(t, err)
	assert.Equal(t, "po_3.csv", filepath.Base(result.OutputFile))
}

func TestRun_writeFailure(t *testing.T) {
	opts := testOptions(t, 5)
	blocker := filepath.Join(opts.OutputDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	opts.OutputDir = filepath.Join(blocker, "out")

	_, err := New(nil, nil).Run(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}

func TestResolveCount(t *testing.T) {
	count, err := ResolveCount(nil, 10000)
	require.NoError(t, err)
	assert.Equal(t, 10000, count)

	count, err = ResolveCount([]string{"250"}, 10000)
	require.NoError(t, err)
	assert.Equal(t, 250, count)

	_, err = ResolveCount([]string{"lots"}, 10000)
	assert.True(t, errors.Is(err, ErrInvalidCountArg))
	assert.Contains(t, err.Error(), `"lots"`)

	_, err = ResolveCount([]string{"12.5"}, 10000)
	assert.True(t, errors.Is(err, ErrInvalidCountArg))

	_, err = ResolveCount([]string{"0"}, 10000)
	assert.True(t, errors.Is(err, generator.ErrInvalidCount))

	_, err = ResolveCount([]string{"-3"}, 10000)
	assert.True(t, errors.Is(err, generator.ErrInvalidCount))
}
