// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

// Package housekeeping is the storage housekeeping core of recwarden.
//
// The Keeper catalogs recording files under a storage root with a
// liveness/stability classification, correlates file activity with motion
// events reported over HTTP to decide when a file is done being written,
// evicts the globally oldest file once a disk-usage watermark is crossed,
// and maintains a short time series of resource-availability samples for
// troubleshooting.
//
// All mutable state (event ring, metrics ring, storage root, change marker)
// is owned by the Keeper and guarded by one mutex; directory walks run
// outside the lock and consult the event buffer through locked accessors,
// so no operation observes state mid-mutation.
package housekeeping

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tomtom215/recwarden/internal/logging"
	"github.com/tomtom215/recwarden/internal/metrics"
)

const (
	// stableAge is the modification age beyond which a file is considered
	// finished regardless of event correlation.
	stableAge = 60 * time.Second

	// maintenanceInterval rate-limits the quota check and metrics sampling.
	maintenanceInterval = 10 * time.Second
)

// Keeper owns the housekeeping state for one recording tree.
type Keeper struct {
	mu sync.Mutex

	root         string
	cleanPercent int

	events  eventRing
	samples metricRing

	// markerSec is the change marker in whole seconds; 0 means never set.
	markerSec int64

	lastTickSec     int64
	lastMaintenance time.Time

	probes Probes
	scanFS func(root string) fs.FS
	now    func() time.Time
}

// New creates a Keeper for the given storage root. cleanPercent is the disk
// usage percentage above which eviction triggers; 0 disables cleanup.
func New(root string, cleanPercent int) *Keeper {
	return &Keeper{
		root:         cleanRoot(root),
		cleanPercent: cleanPercent,
		probes:       DefaultProbes(),
		scanFS:       os.DirFS,
		now:          time.Now,
	}
}

// cleanRoot normalizes a storage root path. The root arrives verbatim from
// the environment or from Motion's target_dir, so a trailing separator is
// realistic and would defeat every comparison against file parents and
// request paths. An empty root stays empty: it means "unset", not ".".
func cleanRoot(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Clean(root)
}

// SetProbes overrides the host probes. Intended for tests.
func (k *Keeper) SetProbes(p Probes) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.probes = p
}

// SetScanFS overrides the filesystem the catalog scan walks. Intended for
// tests that need to simulate entries vanishing or failing mid-walk.
func (k *Keeper) SetScanFS(scanFS func(root string) fs.FS) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.scanFS = scanFS
}

// SetClock overrides the time source. Intended for tests.
func (k *Keeper) SetClock(now func() time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.now = now
}

// Root returns the current storage root, empty if unset.
func (k *Keeper) Root() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.root
}

// SetRoot replaces the storage root and advances the change marker. In-flight
// scans are unaffected; they already captured the previous path.
func (k *Keeper) SetRoot(root string) {
	root = cleanRoot(root)
	k.mu.Lock()
	defer k.mu.Unlock()
	if root == k.root {
		return
	}
	logging.Info().Str("old", k.root).Str("new", root).Msg("Storage root replaced")
	k.root = root
	k.touchLocked(k.now())
}

// Record inserts a completed event into the correlation buffer and advances
// the change marker.
func (k *Keeper) Record(eventID string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	k.events.record(eventID, now)
	k.touchLocked(now)
}

// MatchTime returns the recorded time of the most recently written buffered
// event whose ID is contained in candidateName. See eventRing.matchTime for
// the heuristic's caveats.
func (k *Keeper) MatchTime(candidateName string) (time.Time, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.events.matchTime(candidateName)
}

// RecentEvents returns the buffered events, newest first.
func (k *Keeper) RecentEvents() []EventRecord {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.events.recent()
}

// Touch advances the change marker to now.
func (k *Keeper) Touch() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.touchLocked(k.now())
}

// touchLocked advances the marker, never letting it decrease.
func (k *Keeper) touchLocked(now time.Time) {
	if sec := now.Unix(); sec > k.markerSec {
		k.markerSec = sec
	}
}

// Updated returns the change marker in milliseconds, lazily initializing it
// to now if it was never set. The value never decreases over the life of
// the process.
func (k *Keeper) Updated() int64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.markerSec == 0 {
		k.markerSec = k.now().Unix()
	}
	return k.markerSec * 1000
}

// Tick is the background entry point, safe to call on every scheduler pass.
// It self-rate-limits to one substantive run per second overall, and gates
// the quota check and metrics sampling to once per 10-second interval.
func (k *Keeper) Tick() {
	k.mu.Lock()
	now := k.now()
	if now.Unix() <= k.lastTickSec {
		// Process at most once per whole second.
		k.mu.Unlock()
		return
	}
	k.lastTickSec = now.Unix()

	if !k.lastMaintenance.IsZero() && now.Sub(k.lastMaintenance) < maintenanceInterval {
		k.mu.Unlock()
		return
	}
	k.lastMaintenance = now
	root := k.root
	cleanPercent := k.cleanPercent
	probes := k.probes
	k.mu.Unlock()

	if root == "" {
		return
	}

	total, available, err := probes.DiskUsage(root)
	if err != nil {
		// Quota and metrics work both skip this interval; the next
		// qualifying tick re-evaluates.
		logging.Debug().Err(err).Str("root", root).Msg("Disk usage query failed")
		return
	}
	used := UsedPercent(total, available)
	metrics.DiskUsedPercent.Set(float64(used))
	metrics.DiskAvailableBytes.Set(float64(available))

	k.sample(now, available, probes)

	if cleanPercent > 0 && used >= cleanPercent {
		logging.Info().
			Int("used_percent", used).
			Int("threshold", cleanPercent).
			Msg("Disk usage above threshold, evicting oldest recording")
		if deleted, err := k.TryEvictOne(); err != nil {
			metrics.EvictionErrors.Inc()
			logging.Warn().Err(err).Msg("Eviction failed")
		} else if deleted {
			metrics.EvictionsTotal.Inc()
		}
	}
}

// sample writes one resource-availability sample into the metrics ring.
func (k *Keeper) sample(now time.Time, storageAvailable int64, probes Probes) {
	memAvailable, err := probes.MemAvailable()
	if err != nil {
		logging.Debug().Err(err).Msg("Memory availability query failed")
		memAvailable = 0
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.samples.write(MetricSample{
		SampledAt:             now,
		StorageAvailableBytes: storageAvailable,
		MemoryAvailableBytes:  memAvailable,
	})
}

// RenderMetrics returns the buffered resource samples in chronological
// order, at most one per 10-second slot over the last five minutes.
func (k *Keeper) RenderMetrics() []MetricSample {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.samples.render(k.now())
}

// Status reports the disk-space summary for the storage root. ok is false
// when the root is unset or the filesystem statistics call fails, in which
// case storage fields are omitted from the status payload.
func (k *Keeper) Status() (StorageStatus, bool) {
	k.mu.Lock()
	root := k.root
	probes := k.probes
	k.mu.Unlock()

	if root == "" {
		return StorageStatus{}, false
	}
	total, available, err := probes.DiskUsage(root)
	if err != nil {
		logging.Debug().Err(err).Str("root", root).Msg("Disk usage query failed")
		return StorageStatus{}, false
	}
	return StorageStatus{
		Path:        root,
		Total:       total,
		Available:   available,
		UsedPercent: UsedPercent(total, available),
	}, true
}
