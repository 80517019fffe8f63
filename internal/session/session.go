// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

// Package session holds the per-user conversation state of in-flight
// multi-step operations. Each user has at most one state; installing a new
// one replaces the old without merging. States expire on a sliding TTL:
// reading a state pushes its deadline forward, so an operator who keeps
// answering never times out mid-flow, while an abandoned flow silently
// disappears and the next message is treated as a fresh menu command.
package session

import (
	"sync"
	"time"
)

// DefaultTTL is the sliding expiration window applied when the deployment
// does not override it.
const DefaultTTL = 300 * time.Second

// Action tags the multi-step flow a state belongs to.
type Action string

const (
	ActionAdd       Action = "add"
	ActionSearch    Action = "search"
	ActionEditValue Action = "edit_value"
)

// Step tags the position inside a flow.
type Step string

const (
	StepName       Step = "name"
	StepUsername   Step = "username"
	StepPassword   Step = "password"
	StepQuery      Step = "query"
	StepAwaitValue Step = "await_value"
)

// State is one user's in-flight operation. Data accumulates the partial
// field values collected so far (e.g. the name and username of a
// credential being added).
type State struct {
	Action Action
	Step   Step
	Data   map[string]string

	expiresAt time.Time
}

// Table is a concurrency-safe userID → State map with sliding expiration.
// All mutations go through one mutex, so two racing updates from the same
// user cannot produce a lost write. Expired entries are purged
// opportunistically on every Set and Get; no background sweep is required,
// though PurgeExpired is exposed for one.
type Table struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	states map[int64]State
}

// NewTable constructs a state table with the given sliding TTL. A
// non-positive ttl falls back to DefaultTTL.
func NewTable(ttl time.Duration) *Table {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Table{
		ttl:    ttl,
		now:    time.Now,
		states: make(map[int64]State),
	}
}

// purgeLocked removes expired entries. Caller must hold mu.
func (t *Table) purgeLocked() {
	now := t.now()
	for userID, state := range t.states {
		if !state.expiresAt.After(now) {
			delete(t.states, userID)
		}
	}
}

// Set installs a new state for the user, unconditionally replacing any
// prior one. The caller owns data; the table stores it as-is.
func (t *Table) Set(userID int64, action Action, step Step, data map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.purgeLocked()

	if data == nil {
		data = make(map[string]string)
	}
	t.states[userID] = State{
		Action:    action,
		Step:      step,
		Data:      data,
		expiresAt: t.now().Add(t.ttl),
	}
}

// Get returns a copy of the user's state, sliding its deadline forward by
// the TTL. The copy's Data map is cloned so the caller cannot mutate table
// contents without going through Set.
func (t *Table) Get(userID int64) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.purgeLocked()

	state, ok := t.states[userID]
	if !ok {
		return State{}, false
	}

	state.expiresAt = t.now().Add(t.ttl)
	t.states[userID] = state

	copied := state
	copied.Data = make(map[string]string, len(state.Data))
	for k, v := range state.Data {
		copied.Data[k] = v
	}
	return copied, true
}

// Clear removes the user's state. Idempotent.
func (t *Table) Clear(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.states, userID)
}

// PurgeExpired removes every expired entry and reports how many were
// dropped. Called by the background sweep worker to bound memory while the
// operator is idle.
func (t *Table) PurgeExpired() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := len(t.states)
	t.purgeLocked()
	return before - len(t.states)
}

// Len reports the number of live states. Used by tests and the sweep
// worker's logging.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.states)
}
