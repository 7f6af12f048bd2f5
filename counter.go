package main

import (
	"strings"
	"sync"
)

// countTable tracks how many times each resource has been served. It is
// shared by every connection handler; all access goes through the mutex.
type countTable struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountTable() *countTable {
	return &countTable{counts: make(map[string]int)}
}

// Increment adds one to the count for a resource key.
func (t *countTable) Increment(key string) {
	t.mu.Lock()
	t.counts[key]++
	t.mu.Unlock()
}

// Get returns the current count for a resource key.
func (t *countTable) Get(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key]
}

// requestKey normalizes a request target into a counter key: the decoded
// URL path with a leading slash, a trailing slash for directories, and
// none for files. The same logical resource always yields the same key
// no matter how the client wrote the slash.
func requestKey(target string, isDir bool) string {
	p := targetPath(target)
	if isDir {
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		return p
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		p = "/"
	}
	return p
}
