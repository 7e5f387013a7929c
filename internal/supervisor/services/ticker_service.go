// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package services

import (
	"context"
	"time"
)

// Ticker is any component driven by a periodic background tick. The
// housekeeping keeper and the feed tracker both rate-limit internally,
// so calling Tick more often than their intervals is a cheap no-op.
type Ticker interface {
	Tick()
}

// TickerService drives one or more Tickers from a shared wall-clock
// timer under supervision.
type TickerService struct {
	interval time.Duration
	tickers  []Ticker
	name     string
}

// NewTickerService creates a background maintenance service firing at
// the given interval.
func NewTickerService(interval time.Duration, tickers ...Ticker) *TickerService {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerService{
		interval: interval,
		tickers:  tickers,
		name:     "maintenance-ticker",
	}
}

// Serve implements suture.Service. One immediate pass runs at startup
// so disk usage and feed state are populated before the first interval
// elapses.
func (t *TickerService) Serve(ctx context.Context) error {
	t.tickAll()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.tickAll()
		}
	}
}

func (t *TickerService) tickAll() {
	for _, tk := range t.tickers {
		tk.Tick()
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (t *TickerService) String() string {
	return t.name
}
