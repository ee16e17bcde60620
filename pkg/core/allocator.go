package core

import "strconv"

// Allocator issues monotonically increasing entry identifiers.
//
// It has no reset operation: an id handed out once is never handed out again,
// even after the entry it named has been deleted. Allocator is not safe for
// concurrent use; Store serialises access to the one it owns.
type Allocator struct {
	next int64
}

// NewAllocator returns an allocator whose first id is seed.
func NewAllocator(seed int64) *Allocator {
	if seed < 1 {
		seed = 1
	}
	return &Allocator{next: seed}
}

// SeedFrom returns an allocator seeded one past the highest numeric id in
// entries. Non-numeric ids do not participate.
func SeedFrom(entries []Entry) *Allocator {
	var highest int64
	for _, e := range entries {
		if n, ok := e.ID.Int(); ok && n > highest {
			highest = n
		}
	}
	return NewAllocator(highest + 1)
}

// Allocate returns the current counter value as an ID and advances the counter.
func (a *Allocator) Allocate() ID {
	id := ID(strconv.FormatInt(a.next, 10))
	a.next++
	return id
}

// observe moves the counter past id when id is numeric and not below it, so
// an id introduced from outside the allocator is never handed out later.
func (a *Allocator) observe(id ID) {
	if n, ok := id.Int(); ok && n >= a.next {
		a.next = n + 1
	}
}

// Peek returns the value the next call to Allocate will use.
func (a *Allocator) Peek() int64 {
	return a.next
}
