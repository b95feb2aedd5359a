package paging

import (
	"reflect"
	"testing"
)

// TestFIFOVictim tests round-robin victim selection
func TestFIFOVictim(t *testing.T) {
	policy := NewFIFOPolicy(3)
	refs := []PageID{1, 2, 3, 4, 5}

	table, accesses := runPolicy(t, policy, 3, refs)

	// 4 replaces 1, 5 replaces 2
	if accesses[3].Slot != 0 || accesses[3].Evicted != 1 {
		t.Errorf("Expected page 4 to replace page 1 in slot 0, got %+v", accesses[3])
	}
	if accesses[4].Slot != 1 || accesses[4].Evicted != 2 {
		t.Errorf("Expected page 5 to replace page 2 in slot 1, got %+v", accesses[4])
	}

	expected := []PageID{4, 5, 3}
	if got := table.Occupied(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected frames %v, got %v", expected, got)
	}

	if policy.Cursor() != 2 {
		t.Errorf("Expected cursor 2, got %d", policy.Cursor())
	}
}

// TestFIFOHitKeepsCursor tests that hits do not move the write cursor
func TestFIFOHitKeepsCursor(t *testing.T) {
	policy := NewFIFOPolicy(2)
	refs := []PageID{1, 2, 1, 1, 3}

	_, accesses := runPolicy(t, policy, 2, refs)

	// Page 1 was loaded first, so it goes first despite the hits
	if accesses[4].Evicted != 1 {
		t.Errorf("Expected page 3 to replace page 1, got %+v", accesses[4])
	}
}

// TestFIFORoundRobin checks that after warm-up every fault evicts the page
// loaded frameSize faults earlier
func TestFIFORoundRobin(t *testing.T) {
	refs := []PageID{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}

	for frameSize := 1; frameSize <= 4; frameSize++ {
		_, accesses := runPolicy(t, NewFIFOPolicy(frameSize), frameSize, refs)

		var loaded []PageID
		for i, a := range accesses {
			if !a.Fault {
				continue
			}
			if len(loaded) >= frameSize {
				want := loaded[len(loaded)-frameSize]
				if !a.HasEvicted || a.Evicted != want {
					t.Errorf("frames=%d ref=%d: expected to evict %d, got %+v", frameSize, i, want, a)
				}
				if a.Slot != len(loaded)%frameSize {
					t.Errorf("frames=%d ref=%d: expected slot %d, got %d", frameSize, i, len(loaded)%frameSize, a.Slot)
				}
			}
			loaded = append(loaded, refs[i])
		}
	}
}
