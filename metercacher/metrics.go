// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metercacher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultLabel = "result"

var (
	hitLabels  = prometheus.Labels{resultLabel: "hit"}
	missLabels = prometheus.Labels{resultLabel: "miss"}
)

type cacheMetrics struct {
	getCount      *prometheus.CounterVec
	getTime       *prometheus.CounterVec
	putCount      prometheus.Counter
	putTime       prometheus.Counter
	evictions     prometheus.Gauge
	hitRate       prometheus.Gauge
	len           prometheus.Gauge
	portionFilled prometheus.Gauge
}

func newMetrics(namespace string, registerer prometheus.Registerer) *cacheMetrics {
	factory := promauto.With(registerer)
	return &cacheMetrics{
		getCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_get_count",
				Help:      "Number of get calls, labelled by hit or miss",
			},
			[]string{resultLabel},
		),
		getTime: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_get_time_seconds",
				Help:      "Cumulative time spent in get calls, labelled by hit or miss",
			},
			[]string{resultLabel},
		),
		putCount: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_put_count",
				Help:      "Number of put calls",
			},
		),
		putTime: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_put_time_seconds",
				Help:      "Cumulative time spent in put calls",
			},
		),
		evictions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_evictions",
				Help:      "Entries evicted for capacity or discovered expired",
			},
		),
		hitRate: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_hit_rate",
				Help:      "Ratio of hits to total lookups",
			},
		),
		len: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_len",
				Help:      "Number of entries currently resident",
			},
		),
		portionFilled: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_portion_filled",
				Help:      "Fraction of cache currently filled",
			},
		),
	}
}
