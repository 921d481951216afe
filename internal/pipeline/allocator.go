package pipeline

import "sync"

// Allocator hands out surrogate game ids. Ids are strictly increasing from 1
// and never reused within a run; the read-increment-return sequence is a
// single critical section so two workers can never observe the same value.
type Allocator struct {
	mu   sync.Mutex
	next int64
}

// NewAllocator creates an allocator whose first id is 1
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// NewAllocatorFrom creates an allocator that continues after lastUsed, so a
// run against an already-populated store never re-issues persisted ids
func NewAllocatorFrom(lastUsed int64) *Allocator {
	if lastUsed < 0 {
		lastUsed = 0
	}
	return &Allocator{next: lastUsed + 1}
}

// Next returns the next unique id
func (a *Allocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	return id
}

// LastIssued returns the highest id handed out so far, or the seed value
// for a fresh allocator
func (a *Allocator) LastIssued() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.next - 1
}
