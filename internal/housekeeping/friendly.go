// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import "fmt"

const (
	kib = 1024
	mib = 1024 * 1024
	gib = 1024 * 1024 * 1024
)

// FriendlySize renders a byte count the way the status payload expects:
// one decimal for GB and MB, whole KB below that.
func FriendlySize(value int64) string {
	switch {
	case value > gib:
		return fmt.Sprintf("%d.%01dGB", value/gib, (value%gib)*10/gib)
	case value > mib:
		return fmt.Sprintf("%d.%01dMB", value/mib, (value%mib)*10/mib)
	default:
		return fmt.Sprintf("%dKB", value/kib)
	}
}

// FriendlyPercent renders an integer usage percentage as "NN%".
func FriendlyPercent(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}
