package grove

import "sort"

// hitEntry is one frame of the explicit hit-test stack. Each entry carries the
// query point mapped into the node's local space, the alpha product of the
// node and all ancestors below the query root, and the zPosition sum over the
// same chain.
type hitEntry struct {
	n       *Node
	local   Vec2
	alpha   float64
	z       float64
	entered bool
}

// hitWalk traverses n's subtree in reverse draw order (topmost-drawn node
// visited first) using an explicit two-phase stack: an entry is expanded into
// its children on first touch and reported once they have all been reported.
// Children are pushed in insertion order so the most recently inserted pops
// first. A non-visible node short-circuits its entire subtree.
//
// fn returns false to halt the walk.
func hitWalk(n *Node, p Vec2, fn func(e *hitEntry) bool) {
	if !n.Visible {
		return
	}
	stack := make([]hitEntry, 0, 32)
	stack = append(stack, hitEntry{n: n, local: p, alpha: n.Alpha, z: n.ZPosition})
	for len(stack) > 0 {
		i := len(stack) - 1
		if !stack[i].entered {
			stack[i].entered = true
			e := stack[i] // copy: appends below may move the backing array
			for _, c := range e.n.children {
				if !c.Visible {
					continue
				}
				stack = append(stack, hitEntry{
					n:     c,
					local: fromParentStep(c, e.local),
					alpha: e.alpha * c.Alpha,
					z:     e.z + c.ZPosition,
				})
			}
			continue
		}
		e := stack[i]
		stack = stack[:i]
		if !fn(&e) {
			return
		}
	}
}

// hitQualifies applies the qualification rule shared by AtPoint and NodesAt:
// accumulated alpha above zero, user interaction enabled, and the mapped
// local point inside a non-empty content bounds. Visibility never reaches
// here; hidden subtrees are pruned during the walk.
func hitQualifies(e *hitEntry) bool {
	if e.alpha <= 0 || !e.n.Interactable {
		return false
	}
	cb := e.n.ContentBounds()
	if cb.IsEmpty() {
		return false
	}
	return cb.Contains(e.local.X, e.local.Y)
}

// AtPoint returns the deepest, topmost-drawn qualifying descendant containing
// p, where p is expressed in this node's coordinate space. When nothing
// qualifies, including when this node itself is hidden, the node itself is
// returned: AtPoint always yields some node.
func (n *Node) AtPoint(p Vec2) *Node {
	var hit *Node
	hitWalk(n, p, func(e *hitEntry) bool {
		if hitQualifies(e) {
			hit = e.n
			return false
		}
		return true
	})
	if hit == nil {
		return n
	}
	return hit
}

// NodesAt returns every qualifying node containing p (in this node's
// coordinate space), ordered by descending accumulated zPosition; ties are
// broken by descending visit order, so of two nodes at the same z the more
// recently visited wins. Returns nil when nothing qualifies.
func (n *Node) NodesAt(p Vec2) []*Node {
	type candidate struct {
		n     *Node
		z     float64
		visit int
	}
	var found []candidate
	visit := 0
	hitWalk(n, p, func(e *hitEntry) bool {
		visit++
		if hitQualifies(e) {
			found = append(found, candidate{e.n, e.z, visit})
		}
		return true
	})
	sort.Slice(found, func(i, j int) bool {
		if found[i].z != found[j].z {
			return found[i].z > found[j].z
		}
		return found[i].visit > found[j].visit
	})
	if len(found) == 0 {
		return nil
	}
	out := make([]*Node, len(found))
	for i, c := range found {
		out[i] = c.n
	}
	return out
}

// Intersects reports whether this node's content bounds overlap other's,
// compared in the space of their nearest common ancestor. Nodes in disjoint
// trees, and nodes with empty content bounds, never intersect. Overlap is
// inclusive: touching edges count.
func (n *Node) Intersects(other *Node) bool {
	anc := nearestCommonAncestor(n, other)
	if anc == nil {
		return false
	}
	a := rectToAncestor(n, anc)
	b := rectToAncestor(other, anc)
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Intersects(b)
}

// nearestCommonAncestor walks a's ancestor chain (including a) into an
// identity set, then walks b upward until it lands in that set.
func nearestCommonAncestor(a, b *Node) *Node {
	seen := make(map[*Node]struct{})
	for p := a; p != nil; p = p.Parent {
		seen[p] = struct{}{}
	}
	for p := b; p != nil; p = p.Parent {
		if _, ok := seen[p]; ok {
			return p
		}
	}
	return nil
}

// rectToAncestor lifts n's content bounds level by level into anc's space
// using the same corner primitive as Frame. anc must be an ancestor of n or n
// itself, in which case the bounds are returned untouched.
func rectToAncestor(n, anc *Node) Rect {
	r := n.ContentBounds()
	for p := n; p != anc; p = p.Parent {
		r = rectToParent(p, r)
	}
	return r
}
