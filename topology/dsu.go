package topology

// dsu is a disjoint-set forest over dense indices 0..n-1
// with path compression and union by rank.
type dsu struct {
	parent []int
	rank   []int
}

// newDSU returns n singleton sets.
// Complexity: O(n).
func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// find returns the representative of x.
// Iterative with path halving to avoid deep recursion.
func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]] // point to grandparent
		x = d.parent[x]
	}
	return x
}

// union merges the sets of a and b and reports whether they were disjoint.
// Complexity: O(α(n)) amortized.
func (d *dsu) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false // already joined
	}
	// attach the shallower tree under the deeper one
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
	return true
}
