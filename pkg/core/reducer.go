package core

// Reduce is the transition function of the store. It returns the store that
// results from applying a to state.
//
// Reduce never writes to state. When the action changes nothing (unknown id,
// unrecognised kind) the very same slice is returned, so callers can detect
// a no-op by comparing slice identity.
func Reduce(state []Entry, a Action) []Entry {
	switch a.Kind {
	case ActionCreate:
		next := make([]Entry, 0, len(state)+1)
		next = append(next, a.Entry)
		return append(next, state...)

	case ActionUpdate:
		for i, e := range state {
			if !e.ID.Equal(a.Entry.ID) {
				continue
			}
			next := make([]Entry, len(state))
			copy(next, state)
			next[i] = a.Entry
			return next
		}
		return state

	case ActionDelete:
		// Every match is removed: CREATE performs no uniqueness check, so a
		// duplicated id is representable.
		n := 0
		for _, e := range state {
			if e.ID.Equal(a.ID) {
				n++
			}
		}
		if n == 0 {
			return state
		}
		next := make([]Entry, 0, len(state)-n)
		for _, e := range state {
			if !e.ID.Equal(a.ID) {
				next = append(next, e)
			}
		}
		return next

	default:
		return state
	}
}

// sameSlice reports whether a and b share the same backing array and length.
func sameSlice(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
