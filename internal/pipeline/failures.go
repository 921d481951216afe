package pipeline

import "sync"

// FailureTracker collects dates whose processing failed. Multiple workers
// report concurrently, so access is mutex-guarded; dates are kept in first-
// failure order without duplicates.
type FailureTracker struct {
	mu    sync.Mutex
	seen  map[string]bool
	dates []string
}

// NewFailureTracker creates an empty tracker
func NewFailureTracker() *FailureTracker {
	return &FailureTracker{
		seen: make(map[string]bool),
	}
}

// Add records a failed date. Adding the same date twice is a no-op.
func (f *FailureTracker) Add(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen[date] {
		return
	}
	f.seen[date] = true
	f.dates = append(f.dates, date)
}

// Dates returns the failed dates in first-failure order
func (f *FailureTracker) Dates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.dates))
	copy(out, f.dates)
	return out
}

// Len returns the number of distinct failed dates
func (f *FailureTracker) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.dates)
}

// Reset clears the tracker before a retry pass so the pass records only
// dates that fail again
func (f *FailureTracker) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seen = make(map[string]bool)
	f.dates = nil
}
