// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

// Package metrics provides Prometheus instrumentation for recwarden:
// catalog scans, quota evictions, disk usage, and event notifications.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog scan metrics
	ScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recwarden_catalog_scans_total",
			Help: "Total number of recording catalog scans",
		},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recwarden_catalog_scan_duration_seconds",
			Help:    "Duration of recording catalog scans in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScanEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recwarden_catalog_entries_skipped_total",
			Help: "Total number of entries skipped during scans due to I/O errors",
		},
	)

	// Quota / eviction metrics
	EvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recwarden_evictions_total",
			Help: "Total number of recording files evicted by the quota monitor",
		},
	)

	EvictionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recwarden_eviction_errors_total",
			Help: "Total number of failed eviction attempts",
		},
	)

	DiskUsedPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recwarden_disk_used_percent",
			Help: "Current disk usage percentage of the filesystem hosting the storage root",
		},
	)

	DiskAvailableBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recwarden_disk_available_bytes",
			Help: "Free bytes on the filesystem hosting the storage root",
		},
	)

	// Event notification metrics
	EventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recwarden_motion_events_total",
			Help: "Total number of motion event notifications received",
		},
		[]string{"action"}, // "start", "end", "file"
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recwarden_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recwarden_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)
)
