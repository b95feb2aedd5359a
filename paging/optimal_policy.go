package paging

// OptimalPolicy implements Belady's optimal replacement.
// It keeps no state between accesses: each fault scans the remainder of the
// reference string once per frame, in slot order.
type OptimalPolicy struct {
	refs []PageID
}

// NewOptimalPolicy creates an OPTIMAL policy over the full reference string
func NewOptimalPolicy(refs []PageID) *OptimalPolicy {
	return &OptimalPolicy{refs: refs}
}

func (op *OptimalPolicy) Kind() PolicyKind {
	return PolicyOptimal
}

// OnAccess evicts the resident page used farthest in the future
func (op *OptimalPolicy) OnAccess(refIndex int, page PageID, table *FrameTable) (Access, error) {
	if slot, ok := table.SlotOf(page); ok {
		return Access{Slot: slot}, nil
	}

	return place(table, op.victim(refIndex+1, table), page)
}

// victim picks the frame to overwrite, looking ahead from position start.
// An empty frame or a page that never recurs wins immediately; otherwise the
// farthest next use wins, with earlier slots keeping ties.
func (op *OptimalPolicy) victim(start int, table *FrameTable) int {
	farthest := start
	res := -1

	for slot := 0; slot < table.Size(); slot++ {
		resident, ok := table.Page(slot)
		if !ok {
			return slot
		}

		next := op.nextUse(resident, start)
		if next < 0 {
			return slot
		}
		if next > farthest {
			farthest = next
			res = slot
		}
	}

	if res == -1 {
		return 0
	}
	return res
}

// nextUse returns the first position >= start referencing page, or -1
func (op *OptimalPolicy) nextUse(page PageID, start int) int {
	for j := start; j < len(op.refs); j++ {
		if op.refs[j] == page {
			return j
		}
	}
	return -1
}
