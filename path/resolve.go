package path

import (
	"fmt"

	"github.com/katalvlaran/screwdof/topology"
)

// queueItem pairs a joint index with its BFS depth.
type queueItem struct {
	joint int
	depth int
}

// walker holds the state of one shortest-path search.
type walker struct {
	g     *topology.Graph
	depth []int   // -1 = unseen
	preds [][]int // all predecessors on shortest paths
	queue []queueItem
}

// Resolve returns the base → end-effector traversal.
//
// With a non-nil manual path it only validates and returns it. Otherwise it
// runs BFS from base over links and rigid-body co-membership and enumerates
// up to MaxCandidates shortest paths.
func Resolve(g *topology.Graph, base, ee int, manual []int) (*Resolution, error) {
	if manual != nil {
		if err := Validate(g, base, ee, manual); err != nil {
			return nil, err
		}
		p := append([]int(nil), manual...)
		return &Resolution{Path: p, Candidates: [][]int{p}, Manual: true}, nil
	}

	src, ok := g.Index(base)
	if !ok {
		return nil, fmt.Errorf("%w: base %d", ErrUnknownJoint, base)
	}
	dst, ok := g.Index(ee)
	if !ok {
		return nil, fmt.Errorf("%w: end-effector %d", ErrUnknownJoint, ee)
	}

	w := &walker{
		g:     g,
		depth: make([]int, g.Len()),
		preds: make([][]int, g.Len()),
	}
	for i := range w.depth {
		w.depth[i] = -1
	}
	w.enqueue(src, 0)
	w.loop()

	if w.depth[dst] < 0 {
		return nil, fmt.Errorf("%w: %d → %d", ErrUnreachable, base, ee)
	}

	cands := w.enumerate(src, dst)
	return &Resolution{Path: cands[0], Candidates: cands}, nil
}

// Validate checks a manual path against the graph.
func Validate(g *topology.Graph, base, ee int, p []int) error {
	if len(p) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooShort, len(p))
	}
	if p[0] != base || p[len(p)-1] != ee {
		return fmt.Errorf("%w: path %d…%d, want %d…%d", ErrEndpoints, p[0], p[len(p)-1], base, ee)
	}

	seen := make(map[int]bool, len(p))
	prev := -1
	for k, id := range p {
		i, ok := g.Index(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownJoint, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: %d", ErrRepeatedJoint, id)
		}
		seen[id] = true
		if k > 0 && !adjacent(g, prev, i) {
			return fmt.Errorf("%w: %d → %d", ErrNotAdjacent, p[k-1], id)
		}
		prev = i
	}
	return nil
}

// adjacent reports whether a and b share a link or a rigid-body group.
func adjacent(g *topology.Graph, a, b int) bool {
	if g.SameGroup(a, b) {
		return true
	}
	_, ok := g.LinkBetween(a, b)
	return ok
}

// enqueue marks j discovered at depth d and schedules it.
func (w *walker) enqueue(j, d int) {
	w.depth[j] = d
	w.queue = append(w.queue, queueItem{joint: j, depth: d})
}

// loop processes the queue until it is empty, recording every predecessor
// that lies on a shortest path.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		// 1. dequeue the next joint in FIFO order
		item := w.queue[0]
		w.queue = w.queue[1:]

		// 2. relax every neighbor, links and rigid-group co-members alike
		for _, a := range w.g.Adjacent(item.joint) {
			next := item.depth + 1
			switch w.depth[a.Joint] {
			case -1:
				// 2a. first discovery: fix its depth and enqueue it
				w.enqueue(a.Joint, next)
				w.preds[a.Joint] = append(w.preds[a.Joint], item.joint)
			case next:
				// 2b. reached again at the same depth: another shortest route
				w.preds[a.Joint] = append(w.preds[a.Joint], item.joint)
			}
			// deeper or shallower rediscoveries are not on a shortest path
		}
	}
}

// enumerate lists up to MaxCandidates shortest paths src → dst as joint ids.
// It walks the predecessor DAG backwards from dst with an explicit stack.
func (w *walker) enumerate(src, dst int) [][]int {
	type frame struct {
		joint int
		next  int // index into preds[joint] to try next
	}

	var (
		out   [][]int
		stack = []frame{{joint: dst}}
	)
	for len(stack) > 0 && len(out) < MaxCandidates {
		top := &stack[len(stack)-1]
		if top.joint == src {
			// stack holds dst … src; emit reversed as ids
			p := make([]int, len(stack))
			for k := range stack {
				p[len(stack)-1-k] = w.g.ID(stack[k].joint)
			}
			out = append(out, p)
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next >= len(w.preds[top.joint]) {
			stack = stack[:len(stack)-1] // exhausted
			continue
		}
		pred := w.preds[top.joint][top.next]
		top.next++
		stack = append(stack, frame{joint: pred})
	}

	return out
}
