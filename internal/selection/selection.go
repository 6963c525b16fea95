// Package selection tracks the ids marked for a bulk action, one tracker per
// entity kind. A selection never survives a filter/sort change or a completed
// bulk action; stale ids are pruned against the backing collection.
package selection

import "sort"

type State int

const (
	StateNone State = iota
	StatePartial
	StateAll
)

type Tracker struct {
	ids map[string]struct{}
}

func New() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

func (t *Tracker) Toggle(id string, on bool) {
	if on {
		t.ids[id] = struct{}{}
	} else {
		delete(t.ids, id)
	}
}

func (t *Tracker) Has(id string) bool {
	_, ok := t.ids[id]
	return ok
}

func (t *Tracker) Count() int { return len(t.ids) }

// IDs returns the selection sorted, so bulk operations run in a
// deterministic order.
func (t *Tracker) IDs() []string {
	out := make([]string, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (t *Tracker) Clear() {
	t.ids = make(map[string]struct{})
}

// SetAll selects or deselects every id of the currently filtered view,
// leaving ids outside the view alone.
func (t *Tracker) SetAll(visible []string, on bool) {
	for _, id := range visible {
		t.Toggle(id, on)
	}
}

// Prune drops ids that no longer exist in the backing collection.
func (t *Tracker) Prune(exists func(id string) bool) {
	for id := range t.ids {
		if !exists(id) {
			delete(t.ids, id)
		}
	}
}

// State reports the tri-state select-all checkbox over the filtered view:
// none of the visible ids selected, all of them, or something in between.
func (t *Tracker) State(visible []string) State {
	if len(visible) == 0 {
		return StateNone
	}
	n := 0
	for _, id := range visible {
		if t.Has(id) {
			n++
		}
	}
	switch n {
	case 0:
		return StateNone
	case len(visible):
		return StateAll
	default:
		return StatePartial
	}
}
