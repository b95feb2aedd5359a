package paging

// ClockPolicy implements the second-chance CLOCK algorithm.
//
// Every frame carries a use bit, set whenever the frame is accessed. On a
// fault the hand sweeps forward from its current position: frames with the
// bit set lose it and are skipped, and the first frame with a clear bit is
// overwritten. The hand then rests one past the victim.
type ClockPolicy struct {
	useBits []bool
	hand    int
}

// NewClockPolicy creates a CLOCK policy for frameSize frames
func NewClockPolicy(frameSize int) *ClockPolicy {
	return &ClockPolicy{
		useBits: make([]bool, frameSize),
	}
}

func (c *ClockPolicy) Kind() PolicyKind {
	return PolicyClock
}

// OnAccess gives the accessed frame a second chance on a hit and runs the
// clock sweep on a fault
func (c *ClockPolicy) OnAccess(refIndex int, page PageID, table *FrameTable) (Access, error) {
	if slot, ok := table.SlotOf(page); ok {
		c.useBits[slot] = true
		return Access{Slot: slot}, nil
	}

	// Terminates within two laps: every skipped frame has its bit cleared
	for c.useBits[c.hand] {
		c.useBits[c.hand] = false
		c.advance()
	}

	victim := c.hand
	access, err := place(table, victim, page)
	if err != nil {
		return Access{}, err
	}
	c.useBits[victim] = true
	c.advance()

	return access, nil
}

func (c *ClockPolicy) advance() {
	c.hand = (c.hand + 1) % len(c.useBits)
}

// Hand returns the current position of the clock hand
func (c *ClockPolicy) Hand() int {
	return c.hand
}

// UseBit reports whether slot has been referenced since the hand last passed it
func (c *ClockPolicy) UseBit(slot int) bool {
	return c.useBits[slot]
}
