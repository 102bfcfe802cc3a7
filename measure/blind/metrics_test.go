package blind

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-cbmc/dsp/freqsps"
	"github.com/cwbudde/algo-cbmc/dsp/modclass"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	reports := []Report{
		{Modulation: modclass.QPSK, AbsC40: 1, Estimate: freqsps.Estimate{Offset: 0.01, SamplesPerSymbol: 8}},
		{Skipped: true},
		{Modulation: modclass.QPSK, AbsC40: 0.9, Estimate: freqsps.Estimate{Offset: 0.02, SamplesPerSymbol: 4}},
		{Modulation: modclass.QAM16, AbsC40: 0.7, PowerDB: -3},
	}
	m.Observe(reports[:3]...)
	m.Observe(reports[3])
	m.ObserveVerification(reports, modclass.QPSK)

	assert.InDelta(t, 2, testutil.ToFloat64(m.blocksTotal.WithLabelValues("QPSK")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.blocksTotal.WithLabelValues("16QAM")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.skippedTotal), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.verifiedTotal.WithLabelValues(Passed)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.verifiedTotal.WithLabelValues(Failed)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.offset), 0)
	assert.InDelta(t, -3, testutil.ToFloat64(m.powerDB), 0)

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP sigclass_samples_per_symbol Samples per symbol estimated for the last analysed block
# TYPE sigclass_samples_per_symbol gauge
sigclass_samples_per_symbol 0
`), "sigclass_samples_per_symbol"))

	assert.Equal(t, 1, testutil.CollectAndCount(m.absC40))
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	m.Observe(Report{})
	m.ObserveVerification([]Report{{}}, modclass.BPSK)
}
