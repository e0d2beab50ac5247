package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-run CPU profiler for terrain passes.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu      sync.Mutex
	entries = make(map[string]entry)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("terrain.GenerateBaseHeightMap")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := entries[name]
		e.total += d
		e.calls++
		entries[name] = e
		mu.Unlock()
	}
}

// Reset clears all recorded totals. Call before each run you want to report on.
func Reset() {
	mu.Lock()
	clear(entries)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(entries))
	for k, e := range entries {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name has been tracked since the last Reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return entries[name].calls
}

// TopN formats the n slowest names.
// Example: "terrain.GenerateBaseHeightMap:412.5ms, blend.Seams:96.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal place.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strconv.FormatFloat(ms, 'f', 1, 64) + "ms"
}
