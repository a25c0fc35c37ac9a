package quadtree

// clearTree collapses any subtree whose traversal state this frame shows
// it is no longer being walked through (spec §4.9). Because destroyBranches
// runs as soon as a non-WALKTHROUGH node is found, any node this function
// actually recurses into is guaranteed to have an unbroken WALKTHROUGH
// ancestor chain back to its root — so n.state alone, not a separate
// walk-up, already is that node's "effective" traversal state.
func (n *Node) clearTree() {
	if n.state == NOTRENDERING || n.state == RENDERING {
		n.destroyBranches()
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.clearTree()
		}
	}
}

// clearBranches walks the subtree releasing each descendant's
// material/imagery resources while keeping its geometry intact.
func (n *Node) clearBranches() {
	n.Seg.DeleteMaterials()
	for _, c := range n.children {
		if c != nil {
			c.clearBranches()
		}
	}
}

// destroyBranches detaches and destroys n's four children (and,
// recursively, their own branches), leaving n childless and un-ready.
func (n *Node) destroyBranches() {
	if !n.ready {
		return
	}
	children := n.children
	n.children = [4]*Node{}
	n.ready = false
	for _, c := range children {
		if c == nil {
			continue
		}
		c.destroyBranches()
		c.destroy()
	}
}

// destroy tears n down: marks it NOTRENDERING, releases its segment, and
// symmetrically unlinks it from every neighbor so nothing can dereference
// a destroyed node through the neighbor arrays (spec §7).
func (n *Node) destroy() {
	n.state = NOTRENDERING
	n.Seg.Destroy()

	for s := Side(0); s < 4; s++ {
		if nb := n.neighbors[s]; nb != nil {
			opside := OPSIDE[s]
			nb.neighbors[opside] = nil
			nb.hasNeighbor[opside] = false
		}
		n.neighbors[s] = nil
		n.hasNeighbor[s] = false
	}
	n.parent = nil
}

// traverseTree visits n, then recurses into its children if n is ready.
func (n *Node) traverseTree(visit func(*Node)) {
	visit(n)
	if !n.ready {
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.traverseTree(visit)
		}
	}
}
