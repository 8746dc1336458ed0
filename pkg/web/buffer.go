package web

import (
	"sync"
)

// DefaultBufferSize is the default maximum number of events to keep in the buffer.
const DefaultBufferSize = 10000

// Buffer is a thread-safe ring buffer of events with a per-target index,
// so the page can show the history of one screen to clients that join late.
type Buffer struct {
	mu       sync.RWMutex
	events   []Event
	maxSize  int
	writePos int // next position to write (wraps around)
	count    int // total events written (for full detection)

	targetIndex map[string][]int
}

// NewBuffer creates a new ring buffer with the specified max size.
// if maxSize is 0, DefaultBufferSize is used.
func NewBuffer(maxSize int) *Buffer {
	if maxSize <= 0 {
		maxSize = DefaultBufferSize
	}
	return &Buffer{
		events:      make([]Event, maxSize),
		maxSize:     maxSize,
		targetIndex: make(map[string][]int),
	}
}

// Add appends an event to the buffer, overwriting oldest if full.
func (b *Buffer) Add(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count >= b.maxSize {
		b.dropIndex(b.writePos)
	}

	b.events[b.writePos] = e
	b.targetIndex[e.Target] = append(b.targetIndex[e.Target], b.writePos)

	b.writePos = (b.writePos + 1) % b.maxSize
	b.count++
}

// dropIndex removes the index entry of the event about to be overwritten at pos.
// the oldest entry of a target is always first in its index. must be called with lock held.
func (b *Buffer) dropIndex(pos int) {
	target := b.events[pos].Target
	indices := b.targetIndex[target]
	if len(indices) > 0 && indices[0] == pos {
		indices = indices[1:]
	}
	if len(indices) == 0 {
		delete(b.targetIndex, target)
		return
	}
	b.targetIndex[target] = indices
}

// All returns all events in chronological order.
func (b *Buffer) All() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	if b.count <= b.maxSize {
		result := make([]Event, b.count)
		copy(result, b.events[:b.count])
		return result
	}

	// wrapped, read from writePos to end, then start to writePos
	result := make([]Event, b.maxSize)
	tailLen := b.maxSize - b.writePos
	copy(result[:tailLen], b.events[b.writePos:])
	copy(result[tailLen:], b.events[:b.writePos])
	return result
}

// ByTarget returns all events of target in chronological order.
func (b *Buffer) ByTarget(target string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	indices := b.targetIndex[target]
	if len(indices) == 0 {
		return nil
	}
	result := make([]Event, len(indices))
	for i, idx := range indices {
		result[i] = b.events[idx]
	}
	return result
}

// Count returns the number of events currently in the buffer.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return min(b.count, b.maxSize)
}

// Clear removes all events from the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = make([]Event, b.maxSize)
	b.writePos = 0
	b.count = 0
	b.targetIndex = make(map[string][]int)
}
