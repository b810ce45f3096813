package files

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tableQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "table_queries_total",
			Help: "Total number of table views by outcome.",
		},
		[]string{"outcome"},
	)

	uploadedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "uploaded_bytes_total",
			Help: "Total number of bytes accepted by uploads.",
		},
	)
)
