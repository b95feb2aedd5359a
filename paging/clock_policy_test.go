package paging

import (
	"reflect"
	"testing"
)

// TestClockSecondChance tests that a full sweep clears every use bit
func TestClockSecondChance(t *testing.T) {
	policy := NewClockPolicy(3)
	refs := []PageID{1, 2, 3, 1, 4}

	table, accesses := runPolicy(t, policy, 3, refs)

	// All bits are set, so the hand laps once and takes slot 0
	if accesses[4].Slot != 0 || accesses[4].Evicted != 1 {
		t.Errorf("Expected page 4 to replace page 1 in slot 0, got %+v", accesses[4])
	}

	if policy.Hand() != 1 {
		t.Errorf("Expected hand at 1, got %d", policy.Hand())
	}

	if !policy.UseBit(0) {
		t.Error("Victim slot should have its use bit set")
	}
	if policy.UseBit(1) || policy.UseBit(2) {
		t.Error("Swept slots should have their use bits cleared")
	}

	expected := []PageID{4, 2, 3}
	if got := table.Occupied(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected frames %v, got %v", expected, got)
	}
}

// TestClockClearBitVictim tests that the first clear bit is taken immediately
func TestClockClearBitVictim(t *testing.T) {
	policy := NewClockPolicy(3)
	refs := []PageID{1, 2, 3, 1, 4, 5}

	_, accesses := runPolicy(t, policy, 3, refs)

	if accesses[5].Slot != 1 || accesses[5].Evicted != 2 {
		t.Errorf("Expected page 5 to replace page 2 in slot 1, got %+v", accesses[5])
	}
	if policy.Hand() != 2 {
		t.Errorf("Expected hand at 2, got %d", policy.Hand())
	}
}

// TestClockHitKeepsHand tests that hits only set the use bit
func TestClockHitKeepsHand(t *testing.T) {
	policy := NewClockPolicy(4)

	_, accesses := runPolicy(t, policy, 4, []PageID{1, 2, 1})

	if accesses[2].Fault {
		t.Fatal("Third reference should hit")
	}
	if policy.Hand() != 2 {
		t.Errorf("Expected hand at 2, got %d", policy.Hand())
	}
	if !policy.UseBit(0) {
		t.Error("Hit should set the use bit of slot 0")
	}
	if policy.UseBit(2) {
		t.Error("Unused slot should have a clear use bit")
	}
}
