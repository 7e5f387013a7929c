// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// Probes reads host resource figures. The function fields are overridable
// so tests can run against synthetic filesystems and meminfo content.
type Probes struct {
	Statfs      func(path string, buf *syscall.Statfs_t) error
	OpenMeminfo func() (io.ReadCloser, error)
}

// DefaultProbes returns probes backed by the real host.
func DefaultProbes() Probes {
	return Probes{
		Statfs: syscall.Statfs,
		OpenMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
	}
}

// DiskUsage reports total and available bytes for the filesystem hosting
// path. Statvfs has two different units, fragments and blocks, which can
// have different sizes; total uses the fragment size and available the
// block size, strictly following the statvfs documentation. On ext4 the
// two sizes are equal, which makes unit mistakes hard to notice.
func (p Probes) DiskUsage(path string) (total, available int64, err error) {
	var st syscall.Statfs_t
	if err := p.Statfs(path, &st); err != nil {
		return 0, 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	total = int64(st.Blocks) * st.Frsize
	available = int64(st.Bavail) * int64(st.Bsize)
	return total, available, nil
}

// UsedPercent computes the integer disk usage percentage.
func UsedPercent(total, available int64) int {
	if total <= 0 {
		return 0
	}
	return int((total - available) * 100 / total)
}

// MemAvailable reads the host's available-memory figure in bytes from the
// MemAvailable line of /proc/meminfo.
func (p Probes) MemAvailable() (int64, error) {
	f, err := p.OpenMeminfo()
	if err != nil {
		return 0, fmt.Errorf("open meminfo: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, fmt.Errorf("malformed MemAvailable line: %q", line)
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse MemAvailable: %w", err)
		}
		return kb * 1024, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read meminfo: %w", err)
	}
	return 0, fmt.Errorf("MemAvailable not found in meminfo")
}
