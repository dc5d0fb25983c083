package color

import (
	"fmt"
	"sort"
)

// Node represents a palette entry that can be both a color and a namespace.
// Color is nil for namespace-only nodes (groups without a color attribute).
// Children is nil for leaf nodes.
type Node struct {
	Color    *Color
	Children map[string]*Node
}

// Lookup resolves a dot-path (as segments) to a copy of the Color stored
// there. Returns an error if the path is not found or the target node has no
// color.
func (n *Node) Lookup(path []string) (*Color, error) {
	current := n
	for _, part := range path {
		if current.Children == nil {
			return nil, fmt.Errorf("path not found: %s is a leaf, cannot traverse further", part)
		}
		child, ok := current.Children[part]
		if !ok {
			return nil, fmt.Errorf("path not found: %q does not exist", part)
		}
		current = child
	}
	if current.Color == nil {
		return nil, fmt.Errorf("path is a group, not a color; add a color attribute or reference a specific child")
	}
	return current.Color.Clone(), nil
}

// Set stores c at path, creating intermediate groups as needed.
func (n *Node) Set(path []string, c *Color) {
	current := n
	for _, part := range path {
		if current.Children == nil {
			current.Children = make(map[string]*Node)
		}
		child, ok := current.Children[part]
		if !ok {
			child = &Node{}
			current.Children[part] = child
		}
		current = child
	}
	current.Color = c
}

// Walk visits every node holding a color in depth-first, name-sorted order.
// Paths are relative to n; n's own color is visited with an empty path.
func (n *Node) Walk(fn func(path []string, c *Color)) {
	n.walk(nil, fn)
}

func (n *Node) walk(prefix []string, fn func(path []string, c *Color)) {
	if n.Color != nil {
		fn(prefix, n.Color)
	}

	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := append(append([]string(nil), prefix...), k)
		n.Children[k].walk(path, fn)
	}
}
