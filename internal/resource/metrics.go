/*
Copyright 2026 Ben.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package resource

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uptimekuma_reconcile_total",
			Help: "Resources reconciled, by kind and action.",
		},
		[]string{"kind", "action"},
	)
	reconcileErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uptimekuma_reconcile_errors_total",
			Help: "Failed resource reconciles, by kind.",
		},
		[]string{"kind"},
	)
	changedFields = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "uptimekuma_reconcile_changed_fields",
			Help:    "Number of differing fields found per reconcile.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		},
	)
)

func init() {
	metrics.Registry.MustRegister(reconcileTotal, reconcileErrors, changedFields)
}

func recordMetrics(kind string, result *Result, err error) {
	if err != nil {
		reconcileErrors.WithLabelValues(kind).Inc()
		return
	}
	reconcileTotal.WithLabelValues(kind, string(result.Action)).Inc()
	changedFields.Observe(float64(len(result.ChangeSet)))
}
