// Package grove is the scene-graph core shared by retained-mode 2D engines:
// a node tree with parent-relative transforms, rotation-correct bounds,
// visibility-aware hit-testing, and a path/wildcard query language for
// locating nodes by name.
//
// Grove deliberately stops at the tree. It does not draw, load textures, step
// physics, or persist anything. A renderer reads [Node.Frame], [Node.Alpha],
// [Node.Visible], and [Node.Children] and does its own thing; see
// examples/frameviewer for the consumer side of that contract.
//
// # Scene graph
//
// Every participant is a [Node]. Trees are rooted at a scene node created with
// [NewScene]; the scene root is the coordinate-space boundary for conversions.
// Children inherit their parent's transform and alpha.
//
//	scene := grove.NewScene("main")
//	hero := grove.NewSprite("hero", 32, 32)
//	hero.X, hero.Y = 100, 50
//	scene.AddChild(hero)
//
// Transform fields (X, Y, Rotation, ScaleX, ScaleY, ZPosition, Alpha, Visible)
// are plain exported fields: set them directly, every tick if you like. All
// queries compute from the current values.
//
// # Coordinate conversion
//
// [Node.ConvertFrom] and [Node.ConvertTo] map points between any two nodes of
// one tree, pivoting through scene space. Composition per level is scale, then
// rotate (radians, counter-clockwise), then translate.
//
// # Finding nodes
//
// [Node.ChildNodeWithName] and friends accept a small pattern grammar: exact
// names, "*", "." and "..", "/"-separated paths, a leading "//" for recursive
// descent, and "[a-z]" / "[a,b,c]" character classes:
//
//	scene.EnumerateChildNodes("//enemy[0-9]/health", func(n *grove.Node, stop *bool) {
//		// ...
//	})
//
// Grove is single-threaded by design: callers serialize tree mutation against
// traversal, typically with a single-writer update phase per frame.
package grove
