// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/recwarden/internal/logging"
	"github.com/tomtom215/recwarden/internal/metrics"
)

// CORSReadOnly returns a CORS middleware restricted to GET requests,
// matching the read-only cross-origin policy of the cctv API. Status
// consumers (the DVR aggregator, dashboards) run on other hosts, so
// origins are left open while methods stay locked down.
func CORSReadOnly() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	})
}

// RateLimitNotify limits the motion notification endpoints. Motion fires
// one notification per event transition per camera; anything much faster
// is a misbehaving or hostile client.
func RateLimitNotify() func(http.Handler) http.Handler {
	return httprate.LimitByIP(120, time.Minute)
}

// RequestIDWithLogging assigns each request an id, exposes it via the
// X-Request-ID header, and threads it through the logging context.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// PrometheusMetrics instruments request counts and latency per route
// pattern. Placed after the router has matched so the pattern, not the
// raw path, becomes the label (bounded cardinality).
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// The route pattern is only known once chi matched; fall back
		// to the raw path for unmatched requests.
		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}
