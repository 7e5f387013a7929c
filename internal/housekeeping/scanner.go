// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"io/fs"
	"time"

	"github.com/tomtom215/recwarden/internal/logging"
	"github.com/tomtom215/recwarden/internal/metrics"
)

// Scan walks the recording tree and returns one entry per regular file
// reachable without error. Traversal is depth-first in filesystem order;
// no ordering is promised to clients. The walk is a fresh pass every call
// and is resilient to the recording process adding, removing, or modifying
// files concurrently: any error on a single entry skips that entry and
// never aborts the scan.
func (k *Keeper) Scan() []RecordingEntry {
	k.mu.Lock()
	root := k.root
	scanFS := k.scanFS
	now := k.now()
	k.mu.Unlock()

	if root == "" {
		return nil
	}

	start := time.Now()
	entries := make([]RecordingEntry, 0, 64)

	//nolint:errcheck // the walk function never returns an error
	fs.WalkDir(scanFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			metrics.ScanEntriesSkipped.Inc()
			logging.Debug().Err(err).Str("path", path).Msg("Scan entry skipped")
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// File vanished between readdir and stat; not an error.
			metrics.ScanEntriesSkipped.Inc()
			logging.Debug().Err(err).Str("path", path).Msg("Scan stat failed")
			return nil
		}
		// fs.FS paths are already slash-separated and relative to root.
		entries = append(entries, RecordingEntry{
			ModifiedAt:   info.ModTime(),
			RelativePath: path,
			SizeBytes:    info.Size(),
			Stable:       k.isStable(path, info.ModTime(), now),
		})
		return nil
	})

	metrics.ScansTotal.Inc()
	metrics.ScanDuration.Observe(time.Since(start).Seconds())
	return entries
}

// isStable reports whether a recording is judged finished being written:
// either its modification time is older than 60 seconds relative to scan
// time, or its relative path matches a buffered event and the modification
// time is at or before that event's recorded time.
func (k *Keeper) isStable(relPath string, mtime, scanTime time.Time) bool {
	if scanTime.Sub(mtime) > stableAge {
		return true
	}
	if eventTime, ok := k.MatchTime(relPath); ok && !mtime.After(eventTime) {
		return true
	}
	return false
}
