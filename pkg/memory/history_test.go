package memory

import (
	"fmt"
	"testing"
)

func TestHistory_AppendWithinCapacity(t *testing.T) {
	h := NewHistory(5)
	for i := 0; i < 3; i++ {
		h.Append(Entry{Question: fmt.Sprintf("q%d", i)})
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	entries := h.Entries()
	if entries[0].Question != "q0" || entries[2].Question != "q2" {
		t.Fatalf("unexpected order: %v", entries)
	}
}

func TestHistory_EvictsOldestBeyondCapacity(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 7; i++ {
		h.Append(Entry{Question: fmt.Sprintf("q%d", i)})
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d, want capacity 3", h.Len())
	}
	entries := h.Entries()
	for i, want := range []string{"q4", "q5", "q6"} {
		if entries[i].Question != want {
			t.Errorf("entries[%d].Question = %q, want %q", i, entries[i].Question, want)
		}
	}
}

func TestHistory_DefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != DefaultMaxInteractions {
		t.Fatalf("cap = %d, want %d", h.Cap(), DefaultMaxInteractions)
	}
}

func TestHistory_EntriesReturnsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(Entry{Question: "original"})
	entries := h.Entries()
	entries[0].Question = "mutated"
	if h.Entries()[0].Question != "original" {
		t.Fatal("Entries must return a copy")
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(3)
	h.Append(Entry{Question: "q"})
	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("len after clear = %d, want 0", h.Len())
	}
	h.Append(Entry{Question: "again"})
	if h.Len() != 1 {
		t.Fatalf("append after clear failed, len = %d", h.Len())
	}
}
