package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsStartedIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RunsStarted.WithLabelValues("grasp").Inc()
	m.RunsStarted.WithLabelValues("grasp").Inc()

	var out dto.Metric
	require.NoError(t, m.RunsStarted.WithLabelValues("grasp").(prometheus.Metric).Write(&out))
	assert.Equal(t, 2.0, out.GetCounter().GetValue())
}

func TestRunDurationObserves(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RunDuration.WithLabelValues("brkga").Observe(0.5)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
