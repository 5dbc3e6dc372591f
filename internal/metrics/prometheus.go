package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tokend_tokens_issued_total",
		Help: "Total number of signed tokens issued, by purpose.",
	}, []string{"purpose"})

	AuthSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokend_auth_success_total",
		Help: "Total number of successful access-code checks.",
	})

	AuthFailureTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokend_auth_failure_total",
		Help: "Total number of failed access-code checks.",
	})

	KeyResolutionFailureTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokend_key_resolution_failure_total",
		Help: "Total number of signing key resolution failures.",
	})

	SigningFailureTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokend_signing_failure_total",
		Help: "Total number of failures in the signing primitive.",
	})
)

// Register registers the issuance metrics with the given registerer.
// It should be called once at application startup. Counters work without
// registration, so tests that exercise the services directly need no setup.
func Register(reg prometheus.Registerer) {
	if reg == nil {
		log.Error().Msg("Prometheus registry is nil, cannot register metrics.")
		return
	}

	collectors := []prometheus.Collector{
		TokensIssuedTotal,
		AuthSuccessTotal,
		AuthFailureTotal,
		KeyResolutionFailureTotal,
		SigningFailureTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			log.Warn().Err(err).Msg("Failed to register metric")
		}
	}
	log.Info().Msg("Prometheus metrics registered.")
}
