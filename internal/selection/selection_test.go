package selection

import (
	"reflect"
	"testing"
)

func TestToggleAndCount(t *testing.T) {
	tr := New()
	tr.Toggle("A1", true)
	tr.Toggle("A2", true)
	tr.Toggle("A1", true) // idempotent
	if tr.Count() != 2 {
		t.Fatalf("count = %d, want 2", tr.Count())
	}
	tr.Toggle("A2", false)
	if tr.Has("A2") || tr.Count() != 1 {
		t.Fatalf("A2 should be deselected, count = %d", tr.Count())
	}
}

func TestIDsSorted(t *testing.T) {
	tr := New()
	for _, id := range []string{"B", "C", "A"} {
		tr.Toggle(id, true)
	}
	if got := tr.IDs(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("got %v", got)
	}
}

func TestTriState(t *testing.T) {
	tr := New()
	visible := []string{"A1", "A2", "A3"}

	if got := tr.State(visible); got != StateNone {
		t.Fatalf("empty selection: got %v, want StateNone", got)
	}
	tr.Toggle("A1", true)
	if got := tr.State(visible); got != StatePartial {
		t.Fatalf("one of three: got %v, want StatePartial", got)
	}
	tr.SetAll(visible, true)
	if got := tr.State(visible); got != StateAll {
		t.Fatalf("all selected: got %v, want StateAll", got)
	}

	// Ids outside the current view do not count toward its state.
	tr.Toggle("Z9", true)
	if got := tr.State(visible); got != StateAll {
		t.Fatalf("off-view id changed state: got %v", got)
	}
	if got := tr.State(nil); got != StateNone {
		t.Fatalf("empty view: got %v, want StateNone", got)
	}
}

func TestSetAllLeavesOthersAlone(t *testing.T) {
	tr := New()
	tr.Toggle("Z9", true)
	tr.SetAll([]string{"A1", "A2"}, true)
	tr.SetAll([]string{"A1", "A2"}, false)
	if !tr.Has("Z9") {
		t.Fatal("deselecting the view dropped an id outside it")
	}
	if tr.Has("A1") || tr.Has("A2") {
		t.Fatal("view ids should be deselected")
	}
}

func TestPrune(t *testing.T) {
	tr := New()
	tr.Toggle("A1", true)
	tr.Toggle("GONE", true)
	tr.Prune(func(id string) bool { return id == "A1" })
	if tr.Has("GONE") || !tr.Has("A1") {
		t.Fatalf("prune kept %v", tr.IDs())
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Toggle("A1", true)
	tr.Clear()
	if tr.Count() != 0 {
		t.Fatalf("count after clear = %d", tr.Count())
	}
}
