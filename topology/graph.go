package topology

import (
	"fmt"
	"sort"
)

// New builds a Graph from joint ids, links given as id pairs, and rigid-body
// sets given as id lists.
//
// Steps:
//  1. Sort ids, reject duplicates, build the id → index map.
//  2. Resolve links to indices; reject unknown ids and self-links; collapse
//     duplicates (either orientation) to the first occurrence.
//  3. Union rigid-body members, then relabel groups densely in order of
//     their smallest member index.
//  4. Add a virtual link between consecutive members of each group that are
//     not already linked.
//
// Complexity: O(J log J + (L + R)·α(J)) where R is the total rigid-set size.
func New(ids []int, links [][2]int, rigid [][]int) (*Graph, error) {
	// 1. joints
	if len(ids) == 0 {
		return nil, ErrNoJoints
	}
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	index := make(map[int]int, len(sorted))
	for i, id := range sorted {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateJoint, id)
		}
		index[id] = i
	}

	g := &Graph{
		ids:   sorted,
		index: index,
		adj:   make([][]Adjacent, len(sorted)),
	}

	// 2. links
	seen := make(map[[2]int]bool, len(links))
	for _, lk := range links {
		u, okU := index[lk[0]]
		v, okV := index[lk[1]]
		if !okU || !okV {
			return nil, fmt.Errorf("%w: link %d-%d", ErrUnknownJoint, lk[0], lk[1])
		}
		if u == v {
			return nil, fmt.Errorf("%w: joint %d", ErrSelfLink, lk[0])
		}
		key := [2]int{min(u, v), max(u, v)}
		if seen[key] {
			continue // first occurrence wins
		}
		seen[key] = true
		g.addLink(u, v, false)
	}

	// 3. rigid-body groups
	d := newDSU(len(sorted))
	for _, set := range rigid {
		first := -1
		for _, id := range set {
			i, ok := index[id]
			if !ok {
				return nil, fmt.Errorf("%w: rigid body member %d", ErrUnknownJoint, id)
			}
			if first < 0 {
				first = i
				continue
			}
			d.union(first, i)
		}
	}
	g.group = make([]int, len(sorted))
	label := make(map[int]int, len(sorted))
	for i := range sorted {
		root := d.find(i)
		gid, ok := label[root]
		if !ok {
			gid = len(g.members)
			label[root] = gid
			g.members = append(g.members, nil)
		}
		g.group[i] = gid
		g.members[gid] = append(g.members[gid], i) // ascending since i ascends
	}

	// 4. virtual chain links inside groups
	for _, m := range g.members {
		for k := 1; k < len(m); k++ {
			key := [2]int{m[k-1], m[k]}
			if seen[key] {
				continue
			}
			seen[key] = true
			g.addLink(m[k-1], m[k], true)
		}
	}

	return g, nil
}

// addLink appends a link and records it in both adjacency lists.
func (g *Graph) addLink(u, v int, virtual bool) {
	li := len(g.links)
	g.links = append(g.links, Link{From: u, To: v, Virtual: virtual})
	g.adj[u] = append(g.adj[u], Adjacent{Joint: v, Link: li})
	g.adj[v] = append(g.adj[v], Adjacent{Joint: u, Link: li})
}

// Len returns the number of joints.
func (g *Graph) Len() int { return len(g.ids) }

// ID returns the joint id stored at index i.
func (g *Graph) ID(i int) int { return g.ids[i] }

// IDs returns a copy of all joint ids in index order.
func (g *Graph) IDs() []int { return append([]int(nil), g.ids...) }

// Index returns the index of joint id and whether it exists.
func (g *Graph) Index(id int) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Links returns a copy of all links (real first, then virtual), by link index.
func (g *Graph) Links() []Link { return append([]Link(nil), g.links...) }

// Link returns the link stored at index li.
func (g *Graph) Link(li int) Link { return g.links[li] }

// Neighbors returns the link neighbors of joint i in link-index order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(i int) []Adjacent { return g.adj[i] }

// Adjacent returns every joint reachable from i in one step, through a link
// or through a shared rigid-body group. Each neighbor appears once, with
// the lowest link index that reaches it (GroundLink for group-only
// neighbors). The result is sorted by neighbor index.
func (g *Graph) Adjacent(i int) []Adjacent {
	best := make(map[int]int, len(g.adj[i]))
	for _, a := range g.adj[i] {
		if cur, ok := best[a.Joint]; !ok || a.Link < cur {
			best[a.Joint] = a.Link
		}
	}
	for _, m := range g.members[g.group[i]] {
		if m == i {
			continue
		}
		if _, ok := best[m]; !ok {
			best[m] = GroundLink
		}
	}
	out := make([]Adjacent, 0, len(best))
	for j, li := range best {
		out = append(out, Adjacent{Joint: j, Link: li})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Joint < out[b].Joint })

	return out
}

// LinkBetween returns the lowest link index joining a and b.
func (g *Graph) LinkBetween(a, b int) (int, bool) {
	for _, n := range g.adj[a] { // adj is in link-index order
		if n.Joint == b {
			return n.Link, true
		}
	}
	return GroundLink, false
}

// Group returns the dense rigid-body group id of joint i.
// Joints outside every rigid-body set form singleton groups.
func (g *Graph) Group(i int) int { return g.group[i] }

// GroupCount returns the number of groups (singletons included).
func (g *Graph) GroupCount() int { return len(g.members) }

// GroupMembers returns the member joint indices of group gid, ascending.
// The returned slice must not be modified.
func (g *Graph) GroupMembers(gid int) []int { return g.members[gid] }

// SameGroup reports whether joints a and b are welded together.
func (g *Graph) SameGroup(a, b int) bool { return g.group[a] == g.group[b] }

// Component returns, per joint index, whether it is reachable from root
// through links or shared rigid-body groups.
// Complexity: O(J + L + Σ group sizes²).
func (g *Graph) Component(root int) []bool {
	in := make([]bool, len(g.ids))
	in[root] = true
	queue := []int{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, a := range g.Adjacent(cur) {
			if !in[a.Joint] {
				in[a.Joint] = true
				queue = append(queue, a.Joint)
			}
		}
	}
	return in
}

// Orientation returns the sign of a joint entered through link in and left
// through link out: +1 when in < out, −1 otherwise.
func Orientation(in, out int) float64 {
	if in < out {
		return 1
	}
	return -1
}

// PathSigns returns the orientation of every joint along an index path.
// The first joint is entered through GroundLink, the last is left through
// ToolLink; steps between group co-members without a link use GroundLink
// for entry and ToolLink for exit.
func (g *Graph) PathSigns(p []int) []float64 {
	signs := make([]float64, len(p))
	for k := range p {
		in, out := GroundLink, ToolLink
		if k > 0 {
			if li, ok := g.LinkBetween(p[k-1], p[k]); ok {
				in = li
			}
		}
		if k < len(p)-1 {
			if li, ok := g.LinkBetween(p[k], p[k+1]); ok {
				out = li
			}
		}
		signs[k] = Orientation(in, out)
	}
	return signs
}
