package loop

import (
	"log"
	"sort"
)

// Switch is an environmental trigger driven by tasks. Activate must be a
// no-op while the switch is already active.
type Switch interface {
	Activate(round int)
	Reset()
}

// PressState is implemented by switches that can report whether they are
// currently held down.
type PressState interface {
	Pressed() bool
}

// SwitchRegistry maps switch ids to their implementations.
type SwitchRegistry struct {
	switches map[int]Switch
}

func NewSwitchRegistry() *SwitchRegistry {
	return &SwitchRegistry{switches: make(map[int]Switch)}
}

// Register binds id to sw. A duplicate id replaces the previous binding.
func (r *SwitchRegistry) Register(id int, sw Switch) {
	if r == nil || sw == nil {
		return
	}
	if r.switches == nil {
		r.switches = make(map[int]Switch)
	}
	if _, ok := r.switches[id]; ok {
		log.Printf("loop: duplicate switch id %d, overwriting registry entry", id)
	}
	r.switches[id] = sw
}

// Unregister removes id only while it is still bound to sw.
func (r *SwitchRegistry) Unregister(id int, sw Switch) bool {
	if r == nil {
		return false
	}
	cur, ok := r.switches[id]
	if !ok || cur != sw {
		return false
	}
	delete(r.switches, id)
	return true
}

func (r *SwitchRegistry) Lookup(id int) (Switch, bool) {
	if r == nil {
		return nil, false
	}
	sw, ok := r.switches[id]
	return sw, ok
}

// ResetAll returns every registered switch to its idle state.
func (r *SwitchRegistry) ResetAll() {
	if r == nil {
		return
	}
	for _, id := range r.IDs() {
		r.switches[id].Reset()
	}
}

// IDs returns the registered ids in ascending order.
func (r *SwitchRegistry) IDs() []int {
	if r == nil {
		return nil
	}
	ids := make([]int, 0, len(r.switches))
	for id := range r.switches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (r *SwitchRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.switches)
}
