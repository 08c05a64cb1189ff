package fiber

import "sort"

// RoundRobin is the default scheduling policy: among FCBs at the highest
// present priority, pick in FIFO order (spec §4.2.1). Priority comparisons
// tie-break by insertion order, which this implementation gets for free by
// keeping one FIFO queue per priority level and always draining the
// highest populated level first.
type RoundRobin struct {
	levels map[int][]*FCB
	order  []int // priority levels with at least one entry, kept sorted desc
}

// NewRoundRobin constructs the default round-robin-with-priority policy.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{levels: make(map[int][]*FCB)}
}

// Awakened implements Policy.
func (r *RoundRobin) Awakened(f *FCB) {
	p := f.Priority()
	q, ok := r.levels[p]
	if !ok {
		r.insertLevel(p)
	}
	r.levels[p] = append(q, f)
}

// PickNext implements Policy.
func (r *RoundRobin) PickNext() *FCB {
	for len(r.order) > 0 {
		top := r.order[0]
		q := r.levels[top]
		if len(q) == 0 {
			r.removeLevel(top)
			continue
		}
		next := q[0]
		r.levels[top] = q[1:]
		if len(r.levels[top]) == 0 {
			r.removeLevel(top)
		}
		return next
	}
	return nil
}

// Priority implements Policy. If f is currently enrolled under its old
// priority, it is moved to the back of the new level's queue.
func (r *RoundRobin) Priority(f *FCB, p int) {
	old := f.Priority()
	if old == p {
		return
	}
	if q, ok := r.levels[old]; ok {
		for i, c := range q {
			if c == f {
				r.levels[old] = append(q[:i], q[i+1:]...)
				if len(r.levels[old]) == 0 {
					r.removeLevel(old)
				}
				f.setPriority(p)
				r.Awakened(f)
				return
			}
		}
	}
	f.setPriority(p)
}

func (r *RoundRobin) insertLevel(p int) {
	r.order = append(r.order, p)
	sort.Sort(sort.Reverse(sort.IntSlice(r.order)))
}

func (r *RoundRobin) removeLevel(p int) {
	delete(r.levels, p)
	for i, lvl := range r.order {
		if lvl == p {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
