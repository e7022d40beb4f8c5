package loop

import "container/heap"

type deferredItem struct {
	at  float64
	seq uint64
	fn  func(now float64)
}

type deferredHeap []*deferredItem

func (h deferredHeap) Len() int { return len(h) }
func (h deferredHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h deferredHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *deferredHeap) Push(x any)   { *h = append(*h, x.(*deferredItem)) }
func (h *deferredHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Deferred is a queue of callbacks keyed by absolute session time. Callbacks
// due at the same time run in the order they were scheduled.
type Deferred struct {
	items deferredHeap
	seq   uint64
}

// At schedules fn to run on the first Run whose now is >= at.
func (d *Deferred) At(at float64, fn func(now float64)) {
	if d == nil || fn == nil {
		return
	}
	d.seq++
	heap.Push(&d.items, &deferredItem{at: at, seq: d.seq, fn: fn})
}

// Run invokes every callback that is due at now and returns how many ran.
func (d *Deferred) Run(now float64) int {
	if d == nil {
		return 0
	}
	ran := 0
	for len(d.items) > 0 && d.items[0].at <= now {
		item := heap.Pop(&d.items).(*deferredItem)
		item.fn(now)
		ran++
	}
	return ran
}

// Next returns the time of the earliest pending callback.
func (d *Deferred) Next() (float64, bool) {
	if d == nil || len(d.items) == 0 {
		return 0, false
	}
	return d.items[0].at, true
}

func (d *Deferred) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

func (d *Deferred) Clear() {
	if d == nil {
		return
	}
	d.items = nil
}
