package derecmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/rsinha/derec-go/pkg/derec/derecmetrics"
)

func TestRecorderIncrementsAgainstOwnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := derecmetrics.NewWithRegistry(reg)

	rec.IncSharesStored(3)
	rec.IncRecoveryAttempted()
	rec.IncRecoveryFailed("reconstruction")
	rec.IncVerificationFailure()

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, mf := range metricFamilies {
		byName[mf.GetName()] = mf
	}

	require.Equal(t, float64(3), byName["derec_shares_stored_total"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(1), byName["derec_recoveries_attempted_total"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(1), byName["derec_verification_failures_total"].Metric[0].GetCounter().GetValue())
}

func TestNilRecorderMethodsAreNoOps(t *testing.T) {
	var rec *derecmetrics.Recorder
	require.NotPanics(t, func() {
		rec.IncSharesStored(1)
		rec.IncRecoveryAttempted()
		rec.IncRecoveryFailed("x")
		rec.IncVerificationFailure()
	})
}
