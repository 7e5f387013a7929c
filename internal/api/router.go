// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires the cctv endpoints onto a chi mux.
type Router struct {
	handlers *Handlers
}

// NewRouter creates a router around the given handler set.
func NewRouter(handlers *Handlers) *Router {
	return &Router{handlers: handlers}
}

// Setup builds the handler tree.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORSReadOnly())
	r.Use(PrometheusMetrics)

	r.Route("/cctv", func(r chi.Router) {
		r.Get("/check", rt.handlers.Check)
		r.Get("/status", rt.handlers.Status)
		r.Get("/recording/*", rt.handlers.Recording)

		// Motion drives these from its on_event_start/on_event_end and
		// on_movie_end hooks, which issue plain GETs.
		r.Group(func(r chi.Router) {
			r.Use(RateLimitNotify())
			r.Get("/motion/event", rt.handlers.MotionEvent)
			r.Get("/motion/file", rt.handlers.MotionFile)
		})
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
