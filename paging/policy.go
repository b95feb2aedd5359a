package paging

// PolicyKind names a page replacement algorithm
type PolicyKind int

const (
	PolicyOptimal PolicyKind = iota
	PolicyFIFO
	PolicyLRU
	PolicyClock
)

// AllPolicies lists every supported policy in report order
var AllPolicies = []PolicyKind{PolicyOptimal, PolicyFIFO, PolicyLRU, PolicyClock}

// String returns the input name of the policy
func (k PolicyKind) String() string {
	switch k {
	case PolicyOptimal:
		return "OPTIMAL"
	case PolicyFIFO:
		return "FIFO"
	case PolicyLRU:
		return "LRU"
	case PolicyClock:
		return "CLOCK"
	default:
		return "UNKNOWN"
	}
}

// ParsePolicyKind maps an input name to a policy. Names are case-sensitive.
func ParsePolicyKind(name string) (PolicyKind, error) {
	switch name {
	case "OPTIMAL":
		return PolicyOptimal, nil
	case "FIFO":
		return PolicyFIFO, nil
	case "LRU":
		return PolicyLRU, nil
	case "CLOCK":
		return PolicyClock, nil
	default:
		return 0, ErrUnknownPolicy("ParsePolicyKind", name)
	}
}

// Access describes the outcome of a single reference
type Access struct {
	Fault      bool
	Slot       int    // Slot holding the page after the access
	Evicted    PageID // Page overwritten on a fault
	HasEvicted bool   // False when the fault filled an empty frame
}

// Policy decides which frame a faulting page overwrites.
// OnAccess is called once per reference in increasing refIndex order.
type Policy interface {
	// Kind returns the algorithm implemented by the policy
	Kind() PolicyKind

	// OnAccess processes page at position refIndex of the reference string,
	// updating table on a fault and the policy's bookkeeping on every access
	OnAccess(refIndex int, page PageID, table *FrameTable) (Access, error)
}

// NewPolicy creates a policy sized for frameSize frames.
// refs is only consulted by OPTIMAL, which looks ahead in the reference string.
func NewPolicy(kind PolicyKind, frameSize int, refs []PageID) (Policy, error) {
	if frameSize < 1 {
		return nil, ErrInvalidConfig("NewPolicy", "frame size must be at least 1, got %d", frameSize)
	}

	switch kind {
	case PolicyOptimal:
		return NewOptimalPolicy(refs), nil
	case PolicyFIFO:
		return NewFIFOPolicy(frameSize), nil
	case PolicyLRU:
		return NewLRUPolicy(frameSize), nil
	case PolicyClock:
		return NewClockPolicy(frameSize), nil
	default:
		return nil, ErrUnknownPolicy("NewPolicy", kind.String())
	}
}

// place writes page into slot and fills in the fault details
func place(table *FrameTable, slot int, page PageID) (Access, error) {
	evicted, hadPage, err := table.Set(slot, page)
	if err != nil {
		return Access{}, err
	}
	return Access{
		Fault:      true,
		Slot:       slot,
		Evicted:    evicted,
		HasEvicted: hadPage,
	}, nil
}
