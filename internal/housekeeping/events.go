// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"strings"
	"time"
)

// eventCapacity is the number of recently completed events retained. Once
// full, new events overwrite the chronologically oldest slot.
const eventCapacity = 8

// eventRing is a fixed-capacity circular log of completed motion events.
// The write cursor only ever advances; slot index is cursor mod capacity.
type eventRing struct {
	slots  [eventCapacity]EventRecord
	cursor uint64
}

// record inserts an event at the write cursor and advances it.
func (r *eventRing) record(id string, now time.Time) {
	r.slots[r.cursor%eventCapacity] = EventRecord{ID: id, RecordedAt: now}
	r.cursor++
}

// matchTime returns the recorded time of the first buffered event whose ID
// is a substring of name, scanning from the most recently written slot
// backward. Substring containment is the correlation test: event IDs are
// expected to be fragments of the resulting file paths, so an exact-key
// lookup would never match. After wraparound the scan order is write order,
// not event-time order; this is a best-effort heuristic and kept as such.
func (r *eventRing) matchTime(name string) (time.Time, bool) {
	n := r.cursor
	if n > eventCapacity {
		n = eventCapacity
	}
	for i := uint64(0); i < n; i++ {
		rec := r.slots[(r.cursor-1-i)%eventCapacity]
		if rec.ID != "" && strings.Contains(name, rec.ID) {
			return rec.RecordedAt, true
		}
	}
	return time.Time{}, false
}

// recent returns the buffered events newest first, for troubleshooting.
func (r *eventRing) recent() []EventRecord {
	n := r.cursor
	if n > eventCapacity {
		n = eventCapacity
	}
	out := make([]EventRecord, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, r.slots[(r.cursor-1-i)%eventCapacity])
	}
	return out
}
