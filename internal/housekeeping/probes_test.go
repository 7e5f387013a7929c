// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"
)

// fakeStatfs returns probes with a synthetic filesystem answer.
func fakeStatfs(blocks, bavail uint64, frsize, bsize int64) Probes {
	return Probes{
		Statfs: func(path string, buf *syscall.Statfs_t) error {
			buf.Blocks = blocks
			buf.Bavail = bavail
			buf.Frsize = frsize
			buf.Bsize = bsize
			return nil
		},
	}
}

func fakeMeminfo(content string) Probes {
	return Probes{
		OpenMeminfo: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestDiskUsage(t *testing.T) {
	t.Run("fragment and block units", func(t *testing.T) {
		// Total counts fragments, available counts blocks; the two
		// sizes differ here to catch unit mixups that ext4 would hide.
		p := fakeStatfs(1000, 100, 4096, 8192)

		total, available, err := p.DiskUsage("/videos")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 1000*4096 {
			t.Errorf("total = %d, want %d", total, 1000*4096)
		}
		if available != 100*8192 {
			t.Errorf("available = %d, want %d", available, 100*8192)
		}
	})

	t.Run("statfs failure", func(t *testing.T) {
		p := Probes{
			Statfs: func(path string, buf *syscall.Statfs_t) error {
				return errors.New("no such device")
			},
		}
		if _, _, err := p.DiskUsage("/gone"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestUsedPercent(t *testing.T) {
	tests := []struct {
		name             string
		total, available int64
		want             int
	}{
		{"mostly free", 1000, 900, 10},
		{"mostly used", 1000, 150, 85},
		{"full", 1000, 0, 100},
		{"empty filesystem", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsedPercent(tt.total, tt.available); got != tt.want {
				t.Errorf("UsedPercent(%d, %d) = %d, want %d", tt.total, tt.available, got, tt.want)
			}
		})
	}
}

func TestMemAvailable(t *testing.T) {
	t.Run("parses the MemAvailable line", func(t *testing.T) {
		p := fakeMeminfo("MemTotal:       16384000 kB\nMemFree:         1024000 kB\nMemAvailable:    8192000 kB\n")

		got, err := p.MemAvailable()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := int64(8192000) * 1024; got != want {
			t.Errorf("MemAvailable = %d, want %d", got, want)
		}
	})

	t.Run("missing line", func(t *testing.T) {
		p := fakeMeminfo("MemTotal:       16384000 kB\n")
		if _, err := p.MemAvailable(); err == nil {
			t.Fatal("expected an error when MemAvailable is absent")
		}
	})

	t.Run("open failure", func(t *testing.T) {
		p := Probes{
			OpenMeminfo: func() (io.ReadCloser, error) {
				return nil, errors.New("denied")
			},
		}
		if _, err := p.MemAvailable(); err == nil {
			t.Fatal("expected an error")
		}
	})
}
