package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordsGenerated.Add(42)
	m.ObserveRequest("/api/orders", "GET", time.Now())

	assert.Equal(t, 42.0, testutil.ToFloat64(m.RecordsGenerated))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "pogen_records_generated_total")
	assert.Contains(t, names, "pogen_http_request_duration_seconds")
}

func TestNew_duplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
