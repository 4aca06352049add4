// Package feed is the social feed state machine.
//
// State is an immutable value. Every change is an Action applied through
// Reduce, which returns a new State and leaves its input untouched:
//
//	next, err := feed.Reduce(state, feed.CreatePost{Author: id, Body: "Hello"}, env)
//
// Store wraps a State for a single session. It serialises actions, persists
// each committed state through a domain.SnapshotStore before making it
// visible, and then notifies optional observers (event publisher, ledger and
// follow mirrors). Observer failures are logged and never undo a commit.
//
// Only government accounts may answer complaint posts. That is the single
// role-gated transition; everything else is checked against ownership or
// input validity.
package feed
