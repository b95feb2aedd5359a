package paging

// FIFOPolicy replaces frames in strict round-robin order
type FIFOPolicy struct {
	frameSize   int
	nextReplace int // Write cursor, advanced on every fault
}

// NewFIFOPolicy creates a FIFO policy for frameSize frames
func NewFIFOPolicy(frameSize int) *FIFOPolicy {
	return &FIFOPolicy{frameSize: frameSize}
}

func (f *FIFOPolicy) Kind() PolicyKind {
	return PolicyFIFO
}

// OnAccess overwrites the frame under the cursor on a fault.
// Hits leave the cursor where it is.
func (f *FIFOPolicy) OnAccess(refIndex int, page PageID, table *FrameTable) (Access, error) {
	if slot, ok := table.SlotOf(page); ok {
		return Access{Slot: slot}, nil
	}

	access, err := place(table, f.nextReplace, page)
	if err != nil {
		return Access{}, err
	}
	f.nextReplace = (f.nextReplace + 1) % f.frameSize

	return access, nil
}

// Cursor returns the slot the next fault will overwrite
func (f *FIFOPolicy) Cursor() int {
	return f.nextReplace
}
