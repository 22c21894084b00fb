package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorderWithRegistry(reg)
	require.NoError(t, err)

	rec.RecordValidation(false, []string{"invalid_weight", "invalid_capacity"})
	rec.RecordValidation(true, nil)
	rec.RecordBatch(3, 20*time.Millisecond)
	rec.RecordCompliance("1.2", "warning")
	rec.RecordCompliance("1.3", "bogus")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.validations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.validations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.errors.WithLabelValues("invalid_weight")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.batchOrders))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.compliance.WithLabelValues("1.2")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.compliance))
}

func TestPromRecorderReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromRecorderWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromRecorderWithRegistry(reg)
	require.NoError(t, err)

	first.RecordBatch(2, time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(second.batchOrders))
}
