// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTryEvictOneEmptyTree(t *testing.T) {
	k := New(t.TempDir(), 80)

	deleted, err := k.TryEvictOne()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected no eviction from an empty tree")
	}
}

func TestTryEvictOneNoRoot(t *testing.T) {
	k := New("", 80)

	deleted, err := k.TryEvictOne()
	if err != nil || deleted {
		t.Errorf("expected a no-op with no root, got deleted=%v err=%v", deleted, err)
	}
}

func TestTryEvictOneRemovesGlobalOldest(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	// The oldest file sits deeper in the tree than newer ones.
	oldest := writeRecording(t, root, "cam2/2026-07/oldest.mp4", now.Add(-72*time.Hour))
	mid := writeRecording(t, root, "cam1/mid.mp4", now.Add(-24*time.Hour))
	newest := writeRecording(t, root, "cam1/newest.mp4", now.Add(-time.Hour))

	k := New(root, 80)

	deleted, err := k.TryEvictOne()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected an eviction")
	}

	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Error("expected the globally oldest file to be removed")
	}
	for _, path := range []string{mid, newest} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to survive: %v", path, err)
		}
	}
}

func TestTryEvictOnePrunesEmptyParent(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	oldest := writeRecording(t, root, "cam1/2026-07-01/only.mp4", now.Add(-72*time.Hour))
	writeRecording(t, root, "cam1/2026-07-02/other.mp4", now.Add(-time.Hour))

	k := New(root, 80)

	if _, err := k.TryEvictOne(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The day directory emptied by the eviction is pruned too.
	if _, err := os.Stat(filepath.Dir(oldest)); !os.IsNotExist(err) {
		t.Error("expected the emptied parent directory to be removed")
	}
	// The camera directory still holds the other day and stays.
	if _, err := os.Stat(filepath.Join(root, "cam1")); err != nil {
		t.Errorf("expected the camera directory to survive: %v", err)
	}
}

func TestTryEvictOneTrailingSlashRoot(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	writeRecording(t, root, "only.mp4", now.Add(-72*time.Hour))

	// The root arrives verbatim from the environment or Motion's
	// target_dir, so a trailing separator is realistic; it must not
	// defeat the root guard when the evicted file's parent is the
	// root itself.
	k := New(root+string(os.PathSeparator), 80)

	deleted, err := k.TryEvictOne()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected an eviction")
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("storage root was removed by eviction: %v", err)
	}
}

func TestTryEvictOneNeverRemovesRoot(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	writeRecording(t, root, "only.mp4", now.Add(-72*time.Hour))

	k := New(root, 80)

	deleted, err := k.TryEvictOne()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected an eviction")
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("storage root must survive even when emptied: %v", err)
	}
}

func TestTryEvictOneOnePerCall(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	writeRecording(t, root, "a.mp4", now.Add(-3*time.Hour))
	writeRecording(t, root, "b.mp4", now.Add(-2*time.Hour))
	writeRecording(t, root, "c.mp4", now.Add(-time.Hour))

	k := New(root, 80)

	for want := 2; want >= 0; want-- {
		deleted, err := k.TryEvictOne()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Fatal("expected an eviction")
		}
		remaining, err := os.ReadDir(root)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(remaining) != want {
			t.Fatalf("expected %d files remaining, got %d", want, len(remaining))
		}
	}
}
