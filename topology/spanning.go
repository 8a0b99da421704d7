package topology

// SpanningForest builds the spanning tree of the component containing root
// and extracts its independent loops.
//
// Steps:
//  1. Component(root) marks the joints under analysis.
//  2. Scan component links in index order with a DSU; a link that joins two
//     different sets is a tree link, any other link closes a loop.
//  3. BFS from root over tree links assigns Parent, ParentLink, Depth, Order.
//  4. For each non-tree link u–v (index order) the loop is
//     u → … → lca → … → v, closed by the link back to u.
//
// The number of loops equals L_c − J_c + 1 for the component.
// Complexity: O(J + L·(α(J) + depth)).
func (g *Graph) SpanningForest(root int) *Forest {
	// 1. allocate the forest and mark the component
	n := len(g.ids)
	f := &Forest{
		Root:        root,
		InComponent: g.Component(root),
		Parent:      make([]int, n),
		ParentLink:  make([]int, n),
		Depth:       make([]int, n),
		TreeLink:    make([]bool, len(g.links)),
	}
	// joints outside the tree keep Parent -1 and enter through GroundLink
	for i := range f.Parent {
		f.Parent[i] = -1
		f.ParentLink[i] = GroundLink
	}

	// 2. classify links in index order; the DSU tracks which joints the
	//    tree already connects
	d := newDSU(n)
	var closing []int
	for li, l := range g.links {
		if !f.InComponent[l.From] {
			continue // links never straddle components
		}
		if d.union(l.From, l.To) {
			// first link between two sets: part of the spanning tree
			f.TreeLink[li] = true
		} else {
			// endpoints already connected: this link closes a loop
			closing = append(closing, li)
		}
	}

	// 3. orient the tree from root with a BFS over tree links only
	visited := make([]bool, n)
	visited[root] = true
	f.Order = append(f.Order, root)
	for head := 0; head < len(f.Order); head++ {
		cur := f.Order[head]
		for _, a := range g.adj[cur] {
			// skip closing links and joints already reached
			if !f.TreeLink[a.Link] || visited[a.Joint] {
				continue
			}
			// record the tree edge cur → a.Joint
			visited[a.Joint] = true
			f.Parent[a.Joint] = cur
			f.ParentLink[a.Joint] = a.Link
			f.Depth[a.Joint] = f.Depth[cur] + 1
			f.Order = append(f.Order, a.Joint)
		}
	}

	// 4. one loop per closing link, in link index order
	for _, li := range closing {
		f.Loops = append(f.Loops, f.loopThrough(g.links[li], li))
	}

	return f
}

// loopThrough walks u and v up to their lowest common ancestor and stitches
// the fundamental cycle of the closing link l (index li).
func (f *Forest) loopThrough(l Link, li int) Loop {
	u, v := l.From, l.To

	// climb both endpoints to equal depth, then together
	var up, down []int // joints from u upward / from v upward
	a, b := u, v
	for f.Depth[a] > f.Depth[b] {
		up = append(up, a)
		a = f.Parent[a]
	}
	for f.Depth[b] > f.Depth[a] {
		down = append(down, b)
		b = f.Parent[b]
	}
	for a != b {
		up = append(up, a)
		down = append(down, b)
		a, b = f.Parent[a], f.Parent[b]
	}
	lca := a

	// stitch the joints: u … lca, then lca's child … v
	joints := make([]int, 0, len(up)+len(down)+1)
	joints = append(joints, up...)
	joints = append(joints, lca)
	for k := len(down) - 1; k >= 0; k-- {
		joints = append(joints, down[k])
	}

	// links[k] joins joints[k] → joints[k+1]; the last one is the closing link
	k := len(joints)
	links := make([]int, k)
	for i := 0; i < k-1; i++ {
		if i < len(up) {
			links[i] = f.ParentLink[joints[i]] // climbing
		} else {
			links[i] = f.ParentLink[joints[i+1]] // descending
		}
	}
	links[k-1] = li

	// each joint is entered through the previous link and left through its own
	signs := make([]float64, k)
	for i := range joints {
		signs[i] = Orientation(links[(i-1+k)%k], links[i])
	}

	return Loop{Joints: joints, Links: links, Signs: signs}
}
