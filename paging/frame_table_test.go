package paging

import (
	"reflect"
	"testing"
)

// TestFrameTable tests basic frame table functionality
func TestFrameTable(t *testing.T) {
	table, err := NewFrameTable(3, DefaultMaxFrames)
	if err != nil {
		t.Fatalf("Failed to create frame table: %v", err)
	}

	if table.Size() != 3 {
		t.Errorf("Expected size 3, got %d", table.Size())
	}

	if table.Used() != 0 {
		t.Errorf("Expected 0 used frames, got %d", table.Used())
	}

	if len(table.Occupied()) != 0 {
		t.Errorf("Expected no occupied frames, got %v", table.Occupied())
	}

	if table.Contains(0) {
		t.Error("Empty table should not contain page 0")
	}
}

func TestFrameTableInvalidSize(t *testing.T) {
	tests := []struct {
		name      string
		frameSize int
		maxFrames int
	}{
		{"zero frames", 0, 10},
		{"negative frames", -1, 10},
		{"above maximum", 11, 10},
		{"above default maximum", DefaultMaxFrames + 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewFrameTable(tt.frameSize, tt.maxFrames)
			if err == nil {
				t.Fatal("Expected error")
			}
			if table != nil {
				t.Error("Table should be nil on error")
			}
			if !IsErrorCode(err, ErrCodeInvalidConfig) {
				t.Errorf("Expected InvalidConfig, got %v", err)
			}
		})
	}
}

func TestFrameTableSet(t *testing.T) {
	table, _ := NewFrameTable(3, 10)

	_, hadPage, err := table.Set(1, 7)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if hadPage {
		t.Error("First write to a slot should not report an evicted page")
	}

	if !table.Contains(7) {
		t.Error("Table should contain page 7")
	}

	slot, ok := table.SlotOf(7)
	if !ok || slot != 1 {
		t.Errorf("Expected page 7 in slot 1, got %d (%v)", slot, ok)
	}

	old, hadPage, err := table.Set(1, 9)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !hadPage || old != 7 {
		t.Errorf("Expected to replace page 7, got %d (%v)", old, hadPage)
	}

	if table.Contains(7) {
		t.Error("Page 7 should have been overwritten")
	}

	if table.Used() != 1 {
		t.Errorf("Expected 1 used frame, got %d", table.Used())
	}
}

func TestFrameTableOccupiedOrder(t *testing.T) {
	table, _ := NewFrameTable(4, 10)

	table.Set(2, 5)
	table.Set(0, 3)
	table.Set(3, 1)

	expected := []PageID{3, 5, 1}
	if got := table.Occupied(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if table.Full() {
		t.Error("Table with an empty slot should not be full")
	}

	table.Set(1, 8)
	if !table.Full() {
		t.Error("Table should be full")
	}
}

func TestFrameTableSetOutOfRange(t *testing.T) {
	table, _ := NewFrameTable(2, 10)

	for _, slot := range []int{-1, 2, 100} {
		if _, _, err := table.Set(slot, 1); !IsErrorCode(err, ErrCodeInvalidSlot) {
			t.Errorf("Expected InvalidSlot for slot %d, got %v", slot, err)
		}
	}

	if table.Used() != 0 {
		t.Error("Failed writes should not change the table")
	}
}

// TestFrameTablePageZero checks that page 0 is distinguished from an empty slot
func TestFrameTablePageZero(t *testing.T) {
	table, _ := NewFrameTable(2, 10)

	if _, ok := table.Page(0); ok {
		t.Error("Slot 0 should be empty")
	}

	table.Set(0, 0)
	page, ok := table.Page(0)
	if !ok || page != 0 {
		t.Errorf("Expected page 0 in slot 0, got %d (%v)", page, ok)
	}

	if !table.Contains(0) {
		t.Error("Table should contain page 0")
	}
}
