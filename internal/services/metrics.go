package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// activityTurns counts activity turns by activity and resulting status.
	activityTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_turns_total",
			Help: "Total number of activity turns by activity and status.",
		},
		[]string{"activity", "status"},
	)

	// analysisJobs counts analysis pipeline outcomes.
	analysisJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_jobs_total",
			Help: "Total number of analysis jobs by outcome.",
		},
		[]string{"outcome"},
	)

	// analysisQueueDepth gauges queued, not yet processed analysis jobs.
	analysisQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "analysis_queue_depth",
			Help: "Number of analysis jobs waiting for a worker.",
		},
	)
)

func init() {
	prometheus.MustRegister(activityTurns, analysisJobs, analysisQueueDepth)
}

func observeTurn(r Result) Result {
	activityTurns.WithLabelValues(string(r.Activity), string(r.Status)).Inc()
	return r
}
