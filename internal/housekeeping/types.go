// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"time"

	"github.com/goccy/go-json"
)

// EventRecord is one completed motion event as reported by the capture
// software. The ID is an opaque string that is, by configuration convention,
// a fragment of the relative path of the files the event produced.
type EventRecord struct {
	ID         string
	RecordedAt time.Time
}

// RecordingEntry is one recording file found during a catalog scan. Entries
// are derived fresh on every scan and never cached across requests.
type RecordingEntry struct {
	ModifiedAt   time.Time
	RelativePath string
	SizeBytes    int64
	Stable       bool
}

// MarshalJSON encodes the entry in the compact wire form used by the status
// payload: [mtimeSeconds, relativePath, sizeBytes, stable].
func (e RecordingEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]interface{}{e.ModifiedAt.Unix(), e.RelativePath, e.SizeBytes, e.Stable})
}

// MetricSample is one resource-availability measurement. A zero SampledAt
// marks a ring slot that has never been written.
type MetricSample struct {
	SampledAt             time.Time
	StorageAvailableBytes int64
	MemoryAvailableBytes  int64
}

// MarshalJSON encodes the sample in the status payload form.
func (s MetricSample) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Time             int64 `json:"time"`
		MemAvailable     int64 `json:"memavailable"`
		StorageAvailable int64 `json:"storageavailable"`
	}{
		Time:             s.SampledAt.Unix(),
		MemAvailable:     s.MemoryAvailableBytes,
		StorageAvailable: s.StorageAvailableBytes,
	})
}

// StorageStatus is the disk-space summary reported in the status payload.
type StorageStatus struct {
	Path        string
	Total       int64
	Available   int64
	UsedPercent int
}
