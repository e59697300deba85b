package grove

import (
	"strings"

	"github.com/pkg/errors"
)

// Name queries locate nodes by a small pattern grammar:
//
//	pattern    := "."  |  ".."  |  recursive  |  path
//	recursive  := "//" path
//	path       := segment ("/" segment)*
//	segment    := "*" | "." | ".." | literal     (literal may embed [class] tokens)
//	class      := "[" (char "-" char | char ("," char)*) "]"
//
// "*" matches any single child, unnamed ones included. "." is the current
// node, ".." the parent (zero matches at a root, not a fault). A leading "/"
// begins matching at this node's children, same as no prefix. A leading "//"
// matches the first segment against every descendant in pre-order and
// continues the rest of the path from each match. Class tokens match one
// character: "a-z" by ordinal range, "a,b,c" by membership. A literal matches
// only when both it and the candidate name are fully consumed; an unnamed
// node matches no literal. A malformed class makes its segment match nothing.

// Pattern is a parsed query, reusable across calls and nodes. Obtain one from
// CompilePattern when the same query runs repeatedly; the Node query methods
// parse their pattern string fresh per call.
type Pattern struct {
	recursive bool
	segs      []string
}

// parsePattern splits a pattern string into segments. Empty segments (a
// leading "/", doubled or trailing slashes) are dropped.
func parsePattern(s string) Pattern {
	var p Pattern
	if strings.HasPrefix(s, "//") {
		p.recursive = true
		s = s[2:]
	} else if strings.HasPrefix(s, "/") {
		s = s[1:]
	}
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			p.segs = append(p.segs, seg)
		}
	}
	return p
}

// CompilePattern parses and validates a query pattern. Unlike the Node query
// methods, which silently treat a malformed character class as matching
// nothing, CompilePattern reports it.
func CompilePattern(s string) (*Pattern, error) {
	p := parsePattern(s)
	if len(p.segs) == 0 {
		return nil, errors.Errorf("grove: empty pattern %q", s)
	}
	for _, seg := range p.segs {
		if err := validateSegment(seg); err != nil {
			return nil, errors.Wrapf(err, "grove: invalid pattern %q", s)
		}
	}
	return &p, nil
}

func validateSegment(seg string) error {
	for i := 0; i < len(seg); i++ {
		if seg[i] != '[' {
			continue
		}
		end := strings.IndexByte(seg[i:], ']')
		if end < 0 {
			return errors.Errorf("unbalanced character class in segment %q", seg)
		}
		if end == 1 {
			return errors.Errorf("empty character class in segment %q", seg)
		}
		i += end
	}
	return nil
}

// scanFrame marks a stack frame that scans for recursive-descent prefix
// matches rather than consuming a path segment.
const scanFrame = -1

type queryFrame struct {
	n  *Node
	si int // next segment index, or scanFrame
}

// Enumerate invokes fn for every node under n matching the pattern, in the
// order Find returns them. fn may set *stop; the flag is honored after every
// visited node and at every frame boundary, so once set no further node is
// visited and no further callback runs.
//
// The matcher runs on an explicit frame stack rather than native recursion,
// which bounds stack depth on deep or wide trees and makes the cancellation
// contract trivial. Frames are pushed in reverse so branches expand in
// pre-order at every level.
func (p *Pattern) Enumerate(n *Node, fn func(match *Node, stop *bool)) {
	if len(p.segs) == 0 {
		return
	}
	var stop bool
	stack := make([]queryFrame, 0, 32)
	if p.recursive {
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, queryFrame{n.children[i], scanFrame})
		}
	} else {
		stack = append(stack, queryFrame{n, 0})
	}
	for len(stack) > 0 && !stop {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.si == scanFrame {
			// Descendant scan: this node's subtree is scanned after any path
			// continuation rooted here, keeping results in pre-order.
			for i := len(f.n.children) - 1; i >= 0; i-- {
				stack = append(stack, queryFrame{f.n.children[i], scanFrame})
			}
			if segMatch(p.segs[0], f.n.Name) {
				stack = append(stack, queryFrame{f.n, 1})
			}
			continue
		}

		if f.si == len(p.segs) {
			fn(f.n, &stop)
			continue
		}
		switch seg := p.segs[f.si]; seg {
		case ".":
			stack = append(stack, queryFrame{f.n, f.si + 1})
		case "..":
			if f.n.Parent != nil {
				stack = append(stack, queryFrame{f.n.Parent, f.si + 1})
			}
		default:
			for i := len(f.n.children) - 1; i >= 0; i-- {
				if segMatch(seg, f.n.children[i].Name) {
					stack = append(stack, queryFrame{f.n.children[i], f.si + 1})
				}
			}
		}
	}
}

// Find returns every node under n matching the pattern, eagerly, in the same
// order Enumerate visits them.
func (p *Pattern) Find(n *Node) []*Node {
	var out []*Node
	p.Enumerate(n, func(match *Node, _ *bool) {
		out = append(out, match)
	})
	return out
}

// EnumerateChildNodes invokes fn for every node matching pattern, in match
// order, honoring the stop flag. See the grammar at the top of this file.
func (n *Node) EnumerateChildNodes(pattern string, fn func(match *Node, stop *bool)) {
	p := parsePattern(pattern)
	p.Enumerate(n, fn)
}

// ChildNodesWithName returns every node matching pattern, in the order
// EnumerateChildNodes visits them.
func (n *Node) ChildNodesWithName(pattern string) []*Node {
	p := parsePattern(pattern)
	return p.Find(n)
}

// ChildNodeWithName returns the first node matching pattern, or nil. Plain
// patterns, containing none of '/', '*', '.', '[', take a direct-equality
// scan over the immediate children.
func (n *Node) ChildNodeWithName(pattern string) *Node {
	if pattern != "" && !strings.ContainsAny(pattern, "/*.[") {
		for _, c := range n.children {
			if c.Name == pattern {
				return c
			}
		}
		return nil
	}
	var first *Node
	n.EnumerateChildNodes(pattern, func(match *Node, stop *bool) {
		first = match
		*stop = true
	})
	return first
}

// segMatch reports whether a single segment matches a node name. "*" matches
// anything; an empty (unnamed) name matches nothing else.
func segMatch(seg, name string) bool {
	if seg == "*" {
		return true
	}
	if name == "" {
		return false
	}
	if !strings.Contains(seg, "[") {
		return seg == name
	}
	return classLiteralMatch(seg, name)
}

// classLiteralMatch matches a literal segment containing one or more [class]
// tokens character by character against name. Both the segment and the name
// must be fully consumed. An unbalanced '[' makes the segment match nothing.
func classLiteralMatch(seg, name string) bool {
	si, ni := 0, 0
	for si < len(seg) {
		if seg[si] == '[' {
			end := strings.IndexByte(seg[si:], ']')
			if end < 0 {
				return false
			}
			if ni >= len(name) || !classMatch(seg[si+1:si+end], name[ni]) {
				return false
			}
			si += end + 1
			ni++
			continue
		}
		if ni >= len(name) || seg[si] != name[ni] {
			return false
		}
		si++
		ni++
	}
	return ni == len(name)
}

// classMatch matches one character against a class body: the range form
// ("a-z") compares ordinals, the list form ("a,b,c") tests membership. A
// single character is a one-element list.
func classMatch(class string, ch byte) bool {
	if len(class) == 3 && class[1] == '-' {
		return ch >= class[0] && ch <= class[2]
	}
	for _, part := range strings.Split(class, ",") {
		if len(part) == 1 && part[0] == ch {
			return true
		}
	}
	return false
}
