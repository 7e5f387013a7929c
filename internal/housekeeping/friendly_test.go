// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package housekeeping

import "testing"

func TestFriendlySize(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{"zero", 0, "0KB"},
		{"below one KB", 512, "0KB"},
		{"whole KB", 300 * 1024, "300KB"},
		{"exactly one MB stays KB", 1024 * 1024, "1024KB"},
		{"MB with decimal", 1536 * 1024, "1.5MB"},
		{"whole MB", 200 * 1024 * 1024, "200.0MB"},
		{"exactly one GB stays MB", 1024 * 1024 * 1024, "1024.0MB"},
		{"GB with decimal", 1024*1024*1024 + 512*1024*1024, "1.5GB"},
		{"large GB", 250 * 1024 * 1024 * 1024, "250.0GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FriendlySize(tt.value); got != tt.want {
				t.Errorf("FriendlySize(%d) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFriendlyPercent(t *testing.T) {
	if got := FriendlyPercent(85); got != "85%" {
		t.Errorf("FriendlyPercent(85) = %q, want %q", got, "85%")
	}
	if got := FriendlyPercent(0); got != "0%" {
		t.Errorf("FriendlyPercent(0) = %q, want %q", got, "0%")
	}
}
