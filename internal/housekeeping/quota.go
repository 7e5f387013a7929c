// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tomtom215/recwarden/internal/logging"
)

// TryEvictOne removes the single oldest regular file under the storage root,
// judged by modification time across the entire tree. It returns (false, nil)
// when the tree holds no files at all. After a successful removal the file's
// parent directory is removed as well if it became empty; the root itself is
// never removed.
//
// Deleting one file per call keeps reclamation gradual: the quota check runs
// again on the next maintenance pass and evicts further files only while
// usage stays above the threshold.
func (k *Keeper) TryEvictOne() (bool, error) {
	k.mu.Lock()
	root := k.root
	k.mu.Unlock()

	if root == "" {
		return false, nil
	}

	var (
		oldestPath  string
		oldestMtime int64 = 1<<63 - 1
	)

	//nolint:errcheck // the walk function never returns an error
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Debug().Err(err).Str("path", path).Msg("Eviction scan entry skipped")
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if mtime := info.ModTime().Unix(); mtime < oldestMtime {
			oldestMtime = mtime
			oldestPath = path
		}
		return nil
	})

	if oldestPath == "" {
		return false, nil
	}

	if err := os.Remove(oldestPath); err != nil {
		return false, err
	}
	logging.Info().Str("path", oldestPath).Msg("Evicted oldest recording")

	// Best effort: prune the parent directory if the eviction emptied it.
	// os.Remove fails on non-empty directories, which is the common case
	// and not worth reporting.
	if parent := filepath.Dir(oldestPath); parent != root && parent != "." {
		_ = os.Remove(parent)
	}

	return true, nil
}
