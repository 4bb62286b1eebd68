package session

import (
	"testing"
	"time"
)

func TestGetCreatesAndReuses(t *testing.T) {
	store := NewStore(0)

	sel := store.Get(42)
	if sel == nil {
		t.Fatal("expected a selection on first touch")
	}
	sel.Level = "бакалавриат"
	sel.Course = "1"

	again := store.Get(42)
	if again != sel {
		t.Error("expected the same selection instance on second touch")
	}
	if again.Level != "бакалавриат" || again.Course != "1" {
		t.Errorf("expected fields to persist, got %+v", again)
	}
}

func TestSelectionsIsolatedPerUser(t *testing.T) {
	store := NewStore(0)
	store.Get(1).Group = "Б05-401"
	if store.Get(2).Group != "" {
		t.Error("expected a fresh selection for a different user")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}

func TestRegistered(t *testing.T) {
	sel := &Selection{}
	if sel.Registered() {
		t.Error("empty selection must not count as registered")
	}
	sel.Level = "бакалавриат"
	if sel.Registered() {
		t.Error("level alone must not count as registered")
	}
	sel.Course = "1"
	if !sel.Registered() {
		t.Error("level plus course must count as registered")
	}
}

func TestEvictStale(t *testing.T) {
	store := NewStore(0)
	store.ttl = time.Hour

	stale := store.Get(1)
	stale.lastSeen = time.Now().Add(-2 * time.Hour)
	store.Get(2)

	store.evictStale(time.Now())

	if store.Len() != 1 {
		t.Fatalf("expected 1 session after eviction, got %d", store.Len())
	}
	if store.Get(2).Level != "" {
		t.Error("fresh session should have survived untouched")
	}
}
