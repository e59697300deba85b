package grove

import "math"

// Per-level composition order, local to parent: scale by (ScaleX, ScaleY),
// rotate by Rotation (radians, counter-clockwise), translate by (X, Y).
// Every coordinate-space walk in the package goes through these two steps so
// that frames, hit tests, and conversions agree exactly.

// toParentStep maps a point in n's local space into n's parent's space.
func toParentStep(n *Node, p Vec2) Vec2 {
	x := p.X * n.ScaleX
	y := p.Y * n.ScaleY
	if n.Rotation != 0 {
		sin, cos := math.Sincos(n.Rotation)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return Vec2{x + n.X, y + n.Y}
}

// fromParentStep maps a point in n's parent's space into n's local space:
// inverse-translate, inverse-rotate, inverse-scale. A zero scale on an axis
// inverts as identity on that axis rather than dividing, so degenerate nodes
// never produce NaN or Inf. That is an approximation, not a fault.
func fromParentStep(n *Node, p Vec2) Vec2 {
	x := p.X - n.X
	y := p.Y - n.Y
	if n.Rotation != 0 {
		sin, cos := math.Sincos(-n.Rotation)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	if n.ScaleX != 0 {
		x /= n.ScaleX
	}
	if n.ScaleY != 0 {
		y /= n.ScaleY
	}
	return Vec2{x, y}
}

// LocalToScene converts a point in this node's local space to scene space by
// walking upward, applying each level's transform. The walk stops at the
// recognized scene root, exclusive; for a detached subtree it runs to the
// subtree's root, which then serves as the conversion pivot.
func (n *Node) LocalToScene(p Vec2) Vec2 {
	for cur := n; cur != nil && cur.Type != NodeTypeScene; cur = cur.Parent {
		p = toParentStep(cur, p)
	}
	return p
}

// SceneToLocal converts a scene-space point into this node's local space by
// applying the inverse of each level's transform in root-to-node order.
func (n *Node) SceneToLocal(p Vec2) Vec2 {
	var chain []*Node
	for cur := n; cur != nil && cur.Type != NodeTypeScene; cur = cur.Parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		p = fromParentStep(chain[i], p)
	}
	return p
}

// ConvertFrom converts a point from other's coordinate space into this node's
// coordinate space, pivoting through scene space. Both nodes must share a
// tree for the result to be meaningful. Converting from a node to itself
// returns the point exactly, with no trigonometry performed.
func (n *Node) ConvertFrom(p Vec2, other *Node) Vec2 {
	if other == n {
		return p
	}
	return n.SceneToLocal(other.LocalToScene(p))
}

// ConvertTo converts a point from this node's coordinate space into other's
// coordinate space. The exact inverse of ConvertFrom with the roles swapped.
func (n *Node) ConvertTo(p Vec2, other *Node) Vec2 {
	if other == n {
		return p
	}
	return other.SceneToLocal(n.LocalToScene(p))
}
