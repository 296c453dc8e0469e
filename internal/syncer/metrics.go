package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "platefeed_sync",
		Name:      "cache_hits_total",
		Help:      "Initial loads served from the local cache.",
	})

	remoteFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "platefeed_sync",
		Name:      "remote_fetches_total",
		Help:      "Queries issued to the remote record source.",
	})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "platefeed_sync",
		Name:      "retries_total",
		Help:      "Automatic retries of recoverable fetch errors.",
	})

	rollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "platefeed_sync",
		Name:      "rollbacks_total",
		Help:      "Optimistic mutations reverted after a remote failure.",
	})

	backfillsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "platefeed_sync",
		Name:      "backfills_total",
		Help:      "Extra pages fetched because visible results were scarce.",
	})
)
