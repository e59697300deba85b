package grove

import "strings"

// nodeIDCounter is a plain counter (no atomic; grove is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used
// for all node types to avoid interface dispatch on the hot path.
//
// A node appears in exactly one parent's child list, or is detached with
// Parent == nil. The children slice is exclusively owned by the parent;
// Parent and the scene back-reference are non-owning and maintained by every
// tree mutation, immediately.
type Node struct {
	// Identity
	ID   uint32
	Name string // "" means unnamed; names need not be unique
	Type NodeType

	// Hierarchy
	Parent   *Node
	scene    *Node // scene root this node belongs to, nil when detached
	children []*Node

	// Transform (local, relative to parent)
	X, Y      float64
	Rotation  float64 // radians, counter-clockwise
	ScaleX    float64
	ScaleY    float64
	ZPosition float64 // relative draw/hit-test ordering, not a true depth

	// Visibility & interaction
	Alpha        float64 // [0, 1]; children inherit multiplicatively
	Visible      bool
	Interactable bool

	// Metadata
	UserData any

	// Custom bounds hook; overrides the per-type switch when non-nil.
	Bounds BoundsProvider

	// Sprite fields (NodeTypeSprite)
	Width, Height float64

	// Shape fields (NodeTypeShape)
	points     []Vec2
	shapeAABB  Rect // cached local-space AABB of points
	shapeDirty bool // recompute shapeAABB when true

	// Label fields (NodeTypeLabel)
	Text       string
	CharWidth  float64
	LineHeight float64

	// TileMap fields (NodeTypeTileMap)
	Columns, Rows         int
	TileWidth, TileHeight float64

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
}

// NewScene creates a scene node: the distinguished root of a tree and the
// terminus for coordinate conversion. Scene nodes are interactable so that
// hit-test queries rooted at them have a fallback target.
func NewScene(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeScene}
	nodeDefaults(n)
	n.Interactable = true
	return n
}

// NewContainer creates a container node with no extent of its own.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node with a rectangular extent of w by h,
// anchored at the node's origin.
func NewSprite(name string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// NewShape creates a shape node whose extent is the axis-aligned bounding box
// of the given points, in local space. The slice is retained.
func NewShape(name string, points []Vec2) *Node {
	n := &Node{Name: name, Type: NodeTypeShape, points: points, shapeDirty: true}
	nodeDefaults(n)
	return n
}

const (
	defaultCharWidth  = 8
	defaultLineHeight = 16
)

// NewLabel creates a label node. Its extent is derived from monospace metrics:
// the longest line times CharWidth by the line count times LineHeight.
// Adjust CharWidth and LineHeight to match the face a renderer will use.
func NewLabel(name, text string) *Node {
	n := &Node{
		Name:       name,
		Type:       NodeTypeLabel,
		Text:       text,
		CharWidth:  defaultCharWidth,
		LineHeight: defaultLineHeight,
	}
	nodeDefaults(n)
	return n
}

// NewTileMap creates a tile map node covering cols by rows tiles of
// tileW by tileH each, anchored at the node's origin.
func NewTileMap(name string, cols, rows int, tileW, tileH float64) *Node {
	n := &Node{
		Name: name, Type: NodeTypeTileMap,
		Columns: cols, Rows: rows,
		TileWidth: tileW, TileHeight: tileH,
	}
	nodeDefaults(n)
	return n
}

// SetPoints replaces a shape node's point list and invalidates its cached AABB.
func (n *Node) SetPoints(points []Vec2) {
	n.points = points
	n.shapeDirty = true
}

// Points returns a shape node's point list. The returned slice MUST NOT be
// mutated by the caller; use SetPoints to change geometry.
func (n *Node) Points() []Vec2 {
	return n.points
}

// --- Tree maintenance ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	propagateScene(child, n.resolvedScene())
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index among this node's children.
// Same reparenting and cycle-check behavior as AddChild. Panics before any
// mutation if index is out of range, leaving the tree untouched.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("grove: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		// Moving a node within the same parent shrinks children by one,
		// so an insert at the old end lands at the new end.
		if index > len(n.children) {
			index = len(n.children)
		}
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	propagateScene(child, n.resolvedScene())
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("grove: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	propagateScene(child, nil)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("grove: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	propagateScene(child, nil)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		propagateScene(child, nil)
	}
	n.children = n.children[:0]
}

// RemoveChildrenIn detaches every node in list that is currently a child of
// this node. Nodes in list with a different parent are skipped.
func (n *Node) RemoveChildrenIn(list []*Node) {
	for _, child := range list {
		if child != nil && child.Parent == n {
			n.RemoveChild(child)
		}
	}
}

// MoveToParent reparents this node under p, preserving all other state.
// Shorthand for RemoveFromParent followed by p.AddChild.
func (n *Node) MoveToParent(p *Node) {
	n.RemoveFromParent()
	p.AddChild(n)
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("grove: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("grove: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Scene returns the scene root this node belongs to, or nil if the node is
// not attached to a tree rooted at a scene. A scene node is its own scene.
func (n *Node) Scene() *Node {
	return n.resolvedScene()
}

// Root returns the topmost ancestor of this node (itself when detached).
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Path returns the slash-separated chain of names from the root down to this
// node. Handy in logs; unnamed nodes contribute an empty segment.
func (n *Node) Path() string {
	var names []string
	for p := n; p != nil; p = p.Parent {
		names = append(names, p.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Using a disposed node in tree
// operations panics when debug mode is enabled.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.scene = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.scene = nil
	n.Bounds = nil
	n.points = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent
// or the scene back-reference. Uses copy+nil to avoid retaining a dangling
// pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// resolvedScene returns the scene a child attached to n would belong to:
// n itself when n is a scene root, otherwise n's own scene.
func (n *Node) resolvedScene() *Node {
	if n.Type == NodeTypeScene {
		return n
	}
	return n.scene
}

// propagateScene sets the scene back-reference on node and its entire subtree.
// Called with nil on detach.
func propagateScene(node *Node, scene *Node) {
	node.scene = scene
	for _, child := range node.children {
		propagateScene(child, scene)
	}
}
