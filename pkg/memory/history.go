package memory

// DefaultMaxInteractions bounds the rolling history when no capacity is
// configured.
const DefaultMaxInteractions = 100

// History is a fixed-capacity FIFO of entries. Appending beyond capacity
// silently evicts the oldest entry; insertion order is the only ordering.
type History struct {
	capacity int
	entries  []Entry
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultMaxInteractions
	}
	return &History{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

func (h *History) Append(e Entry) {
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, e)
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Cap() int { return h.capacity }

func (h *History) Clear() {
	h.entries = h.entries[:0]
}
