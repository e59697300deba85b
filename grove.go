package grove

// Vec2 is a 2D vector used for positions, offsets, and points throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle contributes nothing: the union of anything with an empty
// rect is the other operand.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.X+r.Width, other.X+other.Width)
	y1 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// NodeType distinguishes how a Node computes its content bounds.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no extent of its own
	NodeTypeScene                     // distinguished tree root; conversion terminus
	NodeTypeSprite                    // rectangular extent of Width x Height
	NodeTypeShape                     // extent is the AABB of its points
	NodeTypeLabel                     // extent derived from text metrics
	NodeTypeTileMap                   // extent of Columns*TileWidth x Rows*TileHeight
)

// BoundsProvider lets a node override the built-in per-type content bounds.
// Set it on [Node.Bounds] for custom node variants.
type BoundsProvider interface {
	ContentBounds() Rect
}
