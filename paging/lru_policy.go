package paging

// LRUPolicy implements LRU (Least Recently Used) replacement using
// per-frame timestamps taken from the reference index
type LRUPolicy struct {
	lastUsed []int // Reference index of the last access to each frame, -1 if never used
}

// NewLRUPolicy creates a new LRU policy
func NewLRUPolicy(frameSize int) *LRUPolicy {
	lastUsed := make([]int, frameSize)
	for i := range lastUsed {
		lastUsed[i] = -1
	}
	return &LRUPolicy{lastUsed: lastUsed}
}

func (lru *LRUPolicy) Kind() PolicyKind {
	return PolicyLRU
}

// OnAccess refreshes the timestamp of the accessed frame, evicting the
// least recently used frame first on a fault
func (lru *LRUPolicy) OnAccess(refIndex int, page PageID, table *FrameTable) (Access, error) {
	if slot, ok := table.SlotOf(page); ok {
		lru.lastUsed[slot] = refIndex
		return Access{Slot: slot}, nil
	}

	victim := lru.victim()
	access, err := place(table, victim, page)
	if err != nil {
		return Access{}, err
	}
	lru.lastUsed[victim] = refIndex

	return access, nil
}

// victim returns the frame with the oldest timestamp; lowest slot wins ties
func (lru *LRUPolicy) victim() int {
	minIndex := 0
	for i := 1; i < len(lru.lastUsed); i++ {
		if lru.lastUsed[i] < lru.lastUsed[minIndex] {
			minIndex = i
		}
	}
	return minIndex
}

// LastUsed returns the timestamp recorded for slot
func (lru *LRUPolicy) LastUsed(slot int) int {
	return lru.lastUsed[slot]
}
