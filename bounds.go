package grove

import "strings"

// ContentBounds returns the node's own local-space visual extent, excluding
// children. The zero Rect means "no extent": containers and scene roots are
// empty, and empty nodes never hit-test or intersect.
//
// Custom node variants set [Node.Bounds]; it wins over the per-type switch.
func (n *Node) ContentBounds() Rect {
	if n.Bounds != nil {
		return n.Bounds.ContentBounds()
	}
	switch n.Type {
	case NodeTypeSprite:
		return Rect{Width: n.Width, Height: n.Height}
	case NodeTypeShape:
		return n.shapeBounds()
	case NodeTypeLabel:
		return n.labelBounds()
	case NodeTypeTileMap:
		return Rect{
			Width:  float64(n.Columns) * n.TileWidth,
			Height: float64(n.Rows) * n.TileHeight,
		}
	default:
		return Rect{}
	}
}

// shapeBounds returns the cached AABB of the shape's points, recomputing it
// after SetPoints.
func (n *Node) shapeBounds() Rect {
	if !n.shapeDirty {
		return n.shapeAABB
	}
	n.shapeDirty = false
	if len(n.points) == 0 {
		n.shapeAABB = Rect{}
		return n.shapeAABB
	}
	minX, minY := n.points[0].X, n.points[0].Y
	maxX, maxY := minX, minY
	for _, p := range n.points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	n.shapeAABB = Rect{minX, minY, maxX - minX, maxY - minY}
	return n.shapeAABB
}

// labelBounds derives a label's extent from its monospace metrics.
func (n *Node) labelBounds() Rect {
	if n.Text == "" {
		return Rect{}
	}
	lines := strings.Split(n.Text, "\n")
	longest := 0
	for _, line := range lines {
		longest = max(longest, len([]rune(line)))
	}
	return Rect{
		Width:  float64(longest) * n.CharWidth,
		Height: float64(len(lines)) * n.LineHeight,
	}
}

// rectToParent maps a rectangle in n's local space into n's parent's space.
//
// With no rotation this is the closed-form translate+scale rectangle, exact
// with zero trig error. Otherwise the four corners go through toParentStep
// and the result is their axis-aligned bounding box. Frame and
// CalculateAccumulatedFrame share this single primitive so a leaf's own frame
// and its contribution to an ancestor's accumulated frame always agree.
func rectToParent(n *Node, r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	if n.Rotation == 0 {
		x := r.X*n.ScaleX + n.X
		y := r.Y*n.ScaleY + n.Y
		w := r.Width * n.ScaleX
		h := r.Height * n.ScaleY
		// Negative scale flips the rect; renormalize to positive extent.
		if w < 0 {
			x, w = x+w, -w
		}
		if h < 0 {
			y, h = y+h, -h
		}
		return Rect{x, y, w, h}
	}
	corners := [4]Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
	first := toParentStep(n, corners[0])
	minX, minY := first.X, first.Y
	maxX, maxY := first.X, first.Y
	for _, c := range corners[1:] {
		p := toParentStep(n, c)
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Frame returns the node's content bounds mapped into its parent's coordinate
// space. Children do not contribute; see CalculateAccumulatedFrame.
func (n *Node) Frame() Rect {
	return rectToParent(n, n.ContentBounds())
}

// CalculateAccumulatedFrame returns the union, in the node's parent's space,
// of the node's frame and every descendant's accumulated frame pushed through
// the node's transform. Returns the zero Rect when the node and all of its
// descendants are empty.
func (n *Node) CalculateAccumulatedFrame() Rect {
	acc := n.Frame()
	for _, child := range n.children {
		cf := child.CalculateAccumulatedFrame()
		if cf.IsEmpty() {
			continue
		}
		acc = acc.Union(rectToParent(n, cf))
	}
	return acc
}
