// Package derecmetrics provides Prometheus counters for the protocol
// orchestrators: shares stored, recovery attempts, and verification
// outcomes. Pairing is a pure-function package with no orchestrator to
// hold a Recorder, so it is not instrumented here; a caller wrapping
// pairing.ContactMessage/RequestMessage/Finish* is free to record its
// own handshake metrics around those calls.
package derecmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "derec"

// Recorder holds the metrics orchestrators report against. A nil
// *Recorder is valid and every method on it is a no-op, so callers that
// don't care about metrics can simply not construct one.
type Recorder struct {
	SharesStored         prometheus.Counter
	RecoveriesAttempted  prometheus.Counter
	RecoveriesFailed     *prometheus.CounterVec
	VerificationFailures prometheus.Counter
}

// New creates a Recorder registered against the default Prometheus
// registerer.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Recorder registered against reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		SharesStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_stored_total",
			Help:      "Total number of store-share requests produced by the sharing orchestrator.",
		}),
		RecoveriesAttempted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recoveries_attempted_total",
			Help:      "Total number of recovery attempts.",
		}),
		RecoveriesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recoveries_failed_total",
			Help:      "Total number of failed recovery attempts, by error kind.",
		}, []string{"kind"}),
		VerificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_failures_total",
			Help:      "Total number of possession-proof verifications that failed.",
		}),
	}
}

// IncSharesStored adds n to the shares-stored counter. No-op on a nil
// Recorder.
func (r *Recorder) IncSharesStored(n int) {
	if r == nil {
		return
	}
	r.SharesStored.Add(float64(n))
}

// IncRecoveryAttempted records a recovery attempt. No-op on a nil
// Recorder.
func (r *Recorder) IncRecoveryAttempted() {
	if r == nil {
		return
	}
	r.RecoveriesAttempted.Inc()
}

// IncRecoveryFailed records a failed recovery tagged by error kind.
// No-op on a nil Recorder.
func (r *Recorder) IncRecoveryFailed(kind string) {
	if r == nil {
		return
	}
	r.RecoveriesFailed.WithLabelValues(kind).Inc()
}

// IncVerificationFailure records a failed possession proof. No-op on a
// nil Recorder.
func (r *Recorder) IncVerificationFailure() {
	if r == nil {
		return
	}
	r.VerificationFailures.Inc()
}
