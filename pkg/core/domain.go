// Package core holds the diary state container: the entry model, the pure
// transition function, the identity allocator and the store that distributes
// snapshots and operations to consumers.
package core

import (
	"fmt"
	"time"
)

// Entry is one diary record.
// CreatedDate is expressed in milliseconds since the Unix epoch.
type Entry struct {
	ID          ID     `json:"id"`
	CreatedDate int64  `json:"createdDate"`
	EmotionID   int    `json:"emotionId"`
	Content     string `json:"content"`
}

// CreatedAt returns CreatedDate as a time.Time.
func (e Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.CreatedDate)
}

// Snapshot is the store's value at one point in time.
// Entries must be treated as read-only; the store never writes to a slice it
// has already published.
type Snapshot struct {
	Version uint64  `json:"version"`
	Entries []Entry `json:"entries"`
}

// Len returns the number of entries in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Find scans the snapshot for the first entry whose id equals id.
func (s Snapshot) Find(id ID) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID.Equal(id) {
			return e, true
		}
	}
	return Entry{}, false
}

// EventType represents the kind of change applied to an entry.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event represents a change applied to a single entry by a transition.
type Event struct {
	Type      EventType
	ID        ID
	Version   uint64
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer so events can travel through generic event buses.
func (e Event) String() string {
	return fmt.Sprintf("%s %s (v%d)", e.Type, e.ID, e.Version)
}
