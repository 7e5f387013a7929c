// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import "time"

const (
	// metricSlots is the ring size: a 5-minute window at 10-second granularity.
	metricSlots = 30

	// metricPeriodSeconds is the sampling period addressing a ring slot.
	metricPeriodSeconds = 10
)

// metricRing is a fixed ring of resource samples addressed by time of day
// modulo the window, not by insertion order: slot = floor(now/10) mod 30.
// Writing always overwrites the slot, so a sample older than the window is
// implicitly evicted the next time its slot's phase recurs.
type metricRing struct {
	slots [metricSlots]MetricSample
}

// slotFor returns the ring index addressed by t.
func slotFor(t time.Time) int {
	return int((t.Unix() / metricPeriodSeconds) % metricSlots)
}

// write stores a sample in the slot addressed by its timestamp.
func (r *metricRing) write(sample MetricSample) {
	r.slots[slotFor(sample.SampledAt)] = sample
}

// render returns up to 30 samples in chronological order, starting from the
// slot after the one addressed by now and wrapping, skipping slots that were
// never written.
func (r *metricRing) render(now time.Time) []MetricSample {
	cur := slotFor(now)
	out := make([]MetricSample, 0, metricSlots)
	for i := 1; i <= metricSlots; i++ {
		s := r.slots[(cur+i)%metricSlots]
		if s.SampledAt.IsZero() {
			continue
		}
		out = append(out, s)
	}
	return out
}
