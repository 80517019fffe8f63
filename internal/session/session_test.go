package session

import (
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTable(ttl time.Duration) (*Table, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
	table := NewTable(ttl)
	table.now = clock.Now
	return table, clock
}

func TestSetGet_RoundTrip(t *testing.T) {
	table, _ := newTestTable(DefaultTTL)

	table.Set(7, ActionAdd, StepName, nil)

	state, ok := table.Get(7)
	if !ok {
		t.Fatal("expected state to be present")
	}
	if state.Action != ActionAdd || state.Step != StepName {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.Data == nil {
		t.Fatal("expected non-nil data map")
	}
}

func TestSet_ReplacesExistingState(t *testing.T) {
	table, _ := newTestTable(DefaultTTL)

	table.Set(7, ActionAdd, StepUsername, map[string]string{"name": "Gmail"})
	table.Set(7, ActionSearch, StepQuery, nil)

	state, ok := table.Get(7)
	if !ok {
		t.Fatal("expected state to be present")
	}
	if state.Action != ActionSearch || state.Step != StepQuery {
		t.Fatalf("expected replacement to win, got %+v", state)
	}
	if len(state.Data) != 0 {
		t.Fatalf("expected no merged data, got %v", state.Data)
	}
}

func TestGet_AbsentUser(t *testing.T) {
	table, _ := newTestTable(DefaultTTL)

	if _, ok := table.Get(99); ok {
		t.Fatal("expected no state for unknown user")
	}
}

func TestGet_ReturnsOwnedCopy(t *testing.T) {
	table, _ := newTestTable(DefaultTTL)

	table.Set(7, ActionAdd, StepUsername, map[string]string{"name": "Gmail"})

	state, _ := table.Get(7)
	state.Data["name"] = "mutated"

	again, _ := table.Get(7)
	if again.Data["name"] != "Gmail" {
		t.Fatalf("table contents were mutated through a returned copy: %v", again.Data)
	}
}

func TestExpiry_StateGoneAfterTTL(t *testing.T) {
	table, clock := newTestTable(300 * time.Second)

	table.Set(7, ActionAdd, StepName, nil)
	clock.Advance(300 * time.Second)

	if _, ok := table.Get(7); ok {
		t.Fatal("expected state to expire after TTL")
	}
	if table.Len() != 0 {
		t.Fatalf("expected purge on get, %d states remain", table.Len())
	}
}

func TestExpiry_GetSlidesDeadline(t *testing.T) {
	table, clock := newTestTable(300 * time.Second)

	table.Set(7, ActionAdd, StepName, nil)

	// touch the state just before expiry, repeatedly: it must survive far
	// beyond the original deadline
	for i := 0; i < 5; i++ {
		clock.Advance(299 * time.Second)
		if _, ok := table.Get(7); !ok {
			t.Fatalf("state expired on touch %d despite sliding TTL", i)
		}
	}

	clock.Advance(300 * time.Second)
	if _, ok := table.Get(7); ok {
		t.Fatal("expected state to expire once left untouched")
	}
}

func TestSet_PurgesOtherUsersExpiredStates(t *testing.T) {
	table, clock := newTestTable(300 * time.Second)

	table.Set(1, ActionAdd, StepName, nil)
	table.Set(2, ActionSearch, StepQuery, nil)
	clock.Advance(301 * time.Second)

	table.Set(3, ActionAdd, StepName, nil)

	if table.Len() != 1 {
		t.Fatalf("expected opportunistic purge on set, %d states remain", table.Len())
	}
}

func TestClear_Idempotent(t *testing.T) {
	table, _ := newTestTable(DefaultTTL)

	table.Set(7, ActionAdd, StepName, nil)
	table.Clear(7)
	table.Clear(7) // second clear must not panic or error

	if _, ok := table.Get(7); ok {
		t.Fatal("expected state to be cleared")
	}
}

func TestPurgeExpired_ReportsDropped(t *testing.T) {
	table, clock := newTestTable(300 * time.Second)

	table.Set(1, ActionAdd, StepName, nil)
	table.Set(2, ActionSearch, StepQuery, nil)
	clock.Advance(301 * time.Second)
	table.Set(3, ActionAdd, StepName, nil)

	if dropped := table.PurgeExpired(); dropped != 0 {
		// users 1 and 2 were already purged by the Set above
		t.Fatalf("expected 0 dropped after opportunistic purge, got %d", dropped)
	}

	clock.Advance(301 * time.Second)
	if dropped := table.PurgeExpired(); dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
}

func TestTable_ConcurrentAccessIsSafe(t *testing.T) {
	table, _ := newTestTable(DefaultTTL)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				table.Set(userID, ActionAdd, StepName, map[string]string{"n": "x"})
				table.Get(userID)
				table.Clear(userID)
			}
		}(int64(i % 3)) // deliberate contention on shared user ids
	}
	wg.Wait()
}

func TestNewTable_NonPositiveTTLFallsBack(t *testing.T) {
	table := NewTable(0)
	if table.ttl != DefaultTTL {
		t.Fatalf("expected DefaultTTL fallback, got %v", table.ttl)
	}
}
