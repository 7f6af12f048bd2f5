package main

import (
	"sync"
	"time"
)

// rateLimiter implements per-client sliding-window admission control.
// Each client key holds the arrival times still inside the window; the
// prune-check-append sequence for a key runs as one critical section.
type rateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string][]time.Time
	lastSweep time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string][]time.Time),
	}
}

// Admit reports whether a request from client at time now may proceed.
// Timestamps older than the window are dropped first; if the client is
// already at the limit the request is refused and now is not recorded,
// so refused attempts never extend the window.
func (rl *rateLimiter) Admit(client string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
		rl.lastSweep = now
	}

	q := rl.clients[client]
	i := 0
	for i < len(q) && now.Sub(q[i]) > rl.window {
		i++
	}
	q = q[i:]

	if len(q) >= rl.limit {
		rl.clients[client] = q
		return false
	}
	rl.clients[client] = append(q, now)
	return true
}

// sweep drops clients whose recorded arrivals are all stale, keeping the
// map bounded by the set of recently active clients. Runs at most once
// per window, under the lock.
func (rl *rateLimiter) sweep(now time.Time) {
	for client, q := range rl.clients {
		if len(q) == 0 || now.Sub(q[len(q)-1]) > rl.window {
			delete(rl.clients, client)
		}
	}
}
