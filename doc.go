// Package diary is the Composition Root for the diary state container.
//
// It wires the core store (entry model, transition function, identity
// allocator) to its seed sources and logging using functional options.
//
// Philosophy:
//
// A diary is an ordered list of entries held in memory. Consumers never touch
// the list directly: they read immutable snapshots and call one of three
// intents (create, update, delete). The read side and the write side are
// handed out separately so each can travel to a different part of an
// application.
//
// Features:
//
//   - **Pure transitions**: every change is a (state, action) -> state function.
//   - **Stable identities**: ids are allocated monotonically and never reused.
//   - **Representation-independent ids**: 1, "1" and "01" name the same entry.
//   - **Snapshot broadcast**: subscribers receive each new snapshot without blocking writers.
//   - **Change feed**: per-entry events filtered by glob pattern.
//
// Usage:
//
//	store, err := diary.New(diary.WithLogger(logger))
//	ops := store.Operations()
//	ops.Create(time.Now().UnixMilli(), 1, "Hello")
//	snap := store.Snapshot()
package diary
