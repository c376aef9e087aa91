package skipta

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	strategyLabel = "strategy"
)

var (
	skiptaPartitionCountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skipta_partition_count_total",
		Help: "The total number of computed partitions.",
	}, []string{strategyLabel})

	skiptaPartitionSubsets = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skipta_partition_subsets",
		Help:    "The number of subsets per computed partition.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{strategyLabel})

	skiptaPartitionDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skipta_partition_duration_seconds",
		Help:    "The time spent computing a partition.",
		Buckets: prometheus.DefBuckets,
	}, []string{strategyLabel})
)

func instrumentPartition(strategy string, subsets int, duration time.Duration) {
	labels := prometheus.Labels{strategyLabel: strategy}

	skiptaPartitionCountTotal.With(labels).Inc()
	skiptaPartitionSubsets.With(labels).Observe(float64(subsets))
	skiptaPartitionDurationSeconds.With(labels).Observe(duration.Seconds())
}
