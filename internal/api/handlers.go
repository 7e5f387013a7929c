// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/recwarden/internal/feed"
	"github.com/tomtom215/recwarden/internal/housekeeping"
	"github.com/tomtom215/recwarden/internal/logging"
	"github.com/tomtom215/recwarden/internal/metrics"
)

// Handlers implements the cctv API endpoints on top of the housekeeping
// keeper and the feed tracker.
type Handlers struct {
	keeper *housekeeping.Keeper
	feed   *feed.Feed
	host   string
	proxy  string

	now func() time.Time
}

// NewHandlers builds the endpoint set. host is this machine's name as
// reported in every document; proxy names the front portal host when the
// service runs behind one, and falls back to host when empty.
func NewHandlers(keeper *housekeeping.Keeper, fd *feed.Feed, host, proxy string) *Handlers {
	if proxy == "" {
		proxy = host
	}
	return &Handlers{
		keeper: keeper,
		feed:   fd,
		host:   host,
		proxy:  proxy,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (h *Handlers) SetClock(now func() time.Time) {
	h.now = now
}

// updated combines the housekeeping and feed change markers: a client
// polls the check document and refetches the full status only when this
// value moves.
func (h *Handlers) updated() int64 {
	hk := h.keeper.Updated()
	fd := h.feed.Updated()
	if fd > hk {
		return fd
	}
	return hk
}

type checkDocument struct {
	Host      string `json:"host"`
	Proxy     string `json:"proxy"`
	Timestamp int64  `json:"timestamp"`
	Updated   int64  `json:"updated"`
}

// Check serves GET /cctv/check: the lightweight poll target.
func (h *Handlers) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, checkDocument{
		Host:      h.host,
		Proxy:     h.proxy,
		Timestamp: h.now().Unix(),
		Updated:   h.updated(),
	})
}

type statusDocument struct {
	Host      string       `json:"host"`
	Proxy     string       `json:"proxy"`
	Timestamp int64        `json:"timestamp"`
	Updated   int64        `json:"updated"`
	CCTV      cctvDocument `json:"cctv"`
}

type cctvDocument struct {
	Console    string                        `json:"console"`
	Feeds      map[string]string             `json:"feeds"`
	Path       string                        `json:"path,omitempty"`
	Available  string                        `json:"available,omitempty"`
	Total      string                        `json:"total,omitempty"`
	Used       string                        `json:"used,omitempty"`
	Recordings []housekeeping.RecordingEntry `json:"recordings"`
	Metrics    []housekeeping.MetricSample   `json:"metrics"`
}

// Status serves GET /cctv/status: the full state document. The recording
// catalog is produced fresh by walking the storage tree on every request.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	doc := statusDocument{
		Host:      h.host,
		Proxy:     h.proxy,
		Timestamp: h.now().Unix(),
		Updated:   h.updated(),
		CCTV: cctvDocument{
			Console:    h.feed.Console(),
			Feeds:      h.feed.Feeds(),
			Recordings: []housekeeping.RecordingEntry{},
			Metrics:    h.keeper.RenderMetrics(),
		},
	}

	// Storage details are included only when the root is known and the
	// filesystem answers; the document stays valid without them.
	if status, ok := h.keeper.Status(); ok {
		doc.CCTV.Path = status.Path
		doc.CCTV.Available = housekeeping.FriendlySize(status.Available)
		doc.CCTV.Total = housekeeping.FriendlySize(status.Total)
		doc.CCTV.Used = housekeeping.FriendlyPercent(status.UsedPercent)
	}
	if entries := h.keeper.Scan(); len(entries) > 0 {
		doc.CCTV.Recordings = entries
	}

	writeJSON(w, http.StatusOK, doc)
}

// Recording serves GET /cctv/recording/*: the raw bytes of one recording
// file under the storage root. Paths resolving outside the root are
// rejected.
func (h *Handlers) Recording(w http.ResponseWriter, r *http.Request) {
	root := h.keeper.Root()
	if root == "" {
		writeError(w, http.StatusNotFound, "no storage root configured")
		return
	}

	rel := chi.URLParam(r, "*")
	if rel == "" {
		writeError(w, http.StatusBadRequest, "missing recording path")
		return
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		writeError(w, http.StatusForbidden, "path outside storage root")
		return
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "no such recording")
		return
	}
	http.ServeFile(w, r, full)
}

// MotionEvent serves /cctv/motion/event: Motion's on_event_start and
// on_event_end notifications. A start only logs; an end (or a request
// with no action) records the event for catalog correlation.
func (h *Handlers) MotionEvent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	eventID := query.Get("event")
	camera := query.Get("camera")
	file := query.Get("file")

	action := query.Get("action")
	if action != "start" {
		action = "end"
	}

	logging.Info().
		Str("action", action).
		Str("event", eventID).
		Str("camera", camera).
		Str("file", file).
		Msg("Motion event notification")
	metrics.EventsRecorded.WithLabelValues(action).Inc()

	if action == "end" && eventID != "" {
		h.keeper.Record(eventID)
	}
	w.WriteHeader(http.StatusOK)
}

// MotionFile serves /cctv/motion/file: Motion's notification that a
// recording file is complete. The catalog picks the file up on its next
// walk; this endpoint exists to log the hand-off.
func (h *Handlers) MotionFile(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	logging.Info().
		Str("event", query.Get("event")).
		Str("camera", query.Get("camera")).
		Str("file", query.Get("file")).
		Msg("Motion file notification")
	metrics.EventsRecorded.WithLabelValues("file").Inc()

	w.WriteHeader(http.StatusOK)
}
