package paging

import (
	"reflect"
	"testing"
)

// TestLRUVictim tests least recently used victim selection
func TestLRUVictim(t *testing.T) {
	policy := NewLRUPolicy(3)
	refs := []PageID{1, 2, 3, 1, 4}

	table, accesses := runPolicy(t, policy, 3, refs)

	// Page 1 was touched at index 3, so page 2 is the oldest
	if accesses[4].Evicted != 2 || accesses[4].Slot != 1 {
		t.Errorf("Expected page 4 to replace page 2 in slot 1, got %+v", accesses[4])
	}

	expected := []PageID{1, 4, 3}
	if got := table.Occupied(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected frames %v, got %v", expected, got)
	}
}

// TestLRUTimestamps tests that hits and faults both refresh timestamps
func TestLRUTimestamps(t *testing.T) {
	policy := NewLRUPolicy(3)

	for slot := 0; slot < 3; slot++ {
		if policy.LastUsed(slot) != -1 {
			t.Errorf("Expected initial timestamp -1 for slot %d, got %d", slot, policy.LastUsed(slot))
		}
	}

	runPolicy(t, policy, 3, []PageID{5, 6, 5})

	if policy.LastUsed(0) != 2 {
		t.Errorf("Expected slot 0 timestamp 2, got %d", policy.LastUsed(0))
	}
	if policy.LastUsed(1) != 1 {
		t.Errorf("Expected slot 1 timestamp 1, got %d", policy.LastUsed(1))
	}
	if policy.LastUsed(2) != -1 {
		t.Errorf("Expected slot 2 timestamp -1, got %d", policy.LastUsed(2))
	}
}

// TestLRUEmptySlotsFirst tests that unused frames are filled before eviction
func TestLRUEmptySlotsFirst(t *testing.T) {
	policy := NewLRUPolicy(3)

	_, accesses := runPolicy(t, policy, 3, []PageID{1, 1, 2, 3})

	if accesses[2].Slot != 1 || accesses[2].HasEvicted {
		t.Errorf("Expected page 2 in empty slot 1, got %+v", accesses[2])
	}
	if accesses[3].Slot != 2 || accesses[3].HasEvicted {
		t.Errorf("Expected page 3 in empty slot 2, got %+v", accesses[3])
	}
}
