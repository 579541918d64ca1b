package services

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

var (
	// generationsTotal counts generation requests by content type and final
	// status. Unknown content types share the "other" label.
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_generations_total",
			Help: "Total number of content generation requests.",
		},
		[]string{"content_type", "status"},
	)

	// seoAnalysesTotal counts persisted SEO analyses.
	seoAnalysesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "optimizer_seo_analyses_total",
			Help: "Total number of SEO analyses recorded.",
		},
	)

	// seedRunsTotal counts reset-and-seed runs by outcome (success|error).
	seedRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_seed_runs_total",
			Help: "Total number of demo data reset-and-seed runs.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, seoAnalysesTotal, seedRunsTotal)
}

func contentTypeLabel(ct domain.ContentType) string {
	if ct.Known() {
		return string(ct)
	}
	return "other"
}
