package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewSimMetrics(reg)
	require.NoError(t, err)

	m.ObserveTick(2 * time.Millisecond)
	m.ObserveTick(time.Millisecond)
	m.Hits.Add(3)
	m.Candidates.WithLabelValues("attack").Set(2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Ticks))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Hits))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Candidates.WithLabelValues("attack")))

	// Повторная регистрация в том же реестре недопустима
	_, err = NewSimMetrics(reg)
	assert.Error(t, err)
}

func TestRegisterProcessCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterProcessCollectors(reg))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "sim_process_rss_bytes")
	assert.Contains(t, names, "sim_process_cpu_percent")
}
