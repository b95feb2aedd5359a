package paging

const (
	// DefaultMaxFrames bounds the number of physical frames in a run
	DefaultMaxFrames = 100
	// DefaultMaxReferences bounds the length of a reference string
	DefaultMaxReferences = 1000
)

// PageID identifies a virtual page in a reference string
type PageID uint32

// frameSlot is a single physical frame; occupied is false until the first write
type frameSlot struct {
	page     PageID
	occupied bool
}

// FrameTable is a fixed-capacity table of physical frames.
// Slot order is stable for the lifetime of a run.
type FrameTable struct {
	slots []frameSlot
	used  int
}

// NewFrameTable creates a table of frameSize empty frames.
// frameSize must be in [1, maxFrames].
func NewFrameTable(frameSize, maxFrames int) (*FrameTable, error) {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	if frameSize < 1 {
		return nil, ErrInvalidConfig("NewFrameTable", "frame size must be at least 1, got %d", frameSize)
	}
	if frameSize > maxFrames {
		return nil, ErrInvalidConfig("NewFrameTable", "frame size %d exceeds maximum %d", frameSize, maxFrames)
	}

	return &FrameTable{
		slots: make([]frameSlot, frameSize),
	}, nil
}

// Size returns the number of frames
func (ft *FrameTable) Size() int {
	return len(ft.slots)
}

// Used returns the number of occupied frames
func (ft *FrameTable) Used() int {
	return ft.used
}

// Full reports whether every frame holds a page
func (ft *FrameTable) Full() bool {
	return ft.used == len(ft.slots)
}

// Contains reports whether some frame holds page
func (ft *FrameTable) Contains(page PageID) bool {
	_, ok := ft.SlotOf(page)
	return ok
}

// SlotOf returns the first slot holding page
func (ft *FrameTable) SlotOf(page PageID) (int, bool) {
	for i, s := range ft.slots {
		if s.occupied && s.page == page {
			return i, true
		}
	}
	return -1, false
}

// Page returns the page held by slot, if any
func (ft *FrameTable) Page(slot int) (PageID, bool) {
	if slot < 0 || slot >= len(ft.slots) {
		return 0, false
	}
	s := ft.slots[slot]
	return s.page, s.occupied
}

// Set overwrites slot with page and returns the page it replaced, if any
func (ft *FrameTable) Set(slot int, page PageID) (PageID, bool, error) {
	if slot < 0 || slot >= len(ft.slots) {
		return 0, false, ErrInvalidSlot("Set", slot, len(ft.slots))
	}

	old := ft.slots[slot]
	if !old.occupied {
		ft.used++
	}
	ft.slots[slot] = frameSlot{page: page, occupied: true}

	return old.page, old.occupied, nil
}

// Occupied returns the resident pages in slot order, skipping empty frames
func (ft *FrameTable) Occupied() []PageID {
	pages := make([]PageID, 0, ft.used)
	for _, s := range ft.slots {
		if s.occupied {
			pages = append(pages, s.page)
		}
	}
	return pages
}
