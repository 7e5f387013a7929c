// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

// Package api serves the cctv web API: the check and status documents,
// the raw recording files, and the motion event notification endpoints.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recwarden/internal/logging"
)

// writeJSON serializes v and writes it with the given status code.
// Encoding failures are logged; by then the status line is already out,
// so nothing more can be reported to the client.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
