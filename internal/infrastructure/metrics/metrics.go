// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// OrdersSavedTotal counts order saves by mode: "create" or "update".
	OrdersSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_saved_total",
		Help: "Total number of orders saved",
	}, []string{"mode"})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of order status transitions",
	}, []string{"to"})

	DocumentsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "documents_rendered_total",
		Help: "Total number of PDF documents rendered",
	}, []string{"layout"})

	// CSVRowsImportedTotal counts import rows by entity and outcome
	// ("imported", "rejected").
	CSVRowsImportedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "csv_rows_imported_total",
		Help: "Total number of CSV rows processed by imports",
	}, []string{"entity", "outcome"})

	DashboardCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_cache_requests_total",
		Help: "Dashboard stats cache lookups",
	}, []string{"result"})
)
