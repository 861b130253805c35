package filesystem

import "github.com/brettbedarf/vfstree"

// Find returns the first node whose ID equals id, searching node itself and
// then each child subtree in stored order (pre-order, left-to-right).
// Returns nil if there is no match or node is nil.
//
// The returned node is live: mutate only nodes found in a tree you cloned.
func Find(node *vfstree.Node, id string) *vfstree.Node {
	if node == nil {
		return nil
	}
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}

// Clone returns a deep copy of node sharing no mutable state with it.
// A nil children slice stays nil and an empty one stays empty.
func Clone(node *vfstree.Node) *vfstree.Node {
	if node == nil {
		return nil
	}
	cp := *node
	if node.Children != nil {
		cp.Children = make([]*vfstree.Node, len(node.Children))
		for i, child := range node.Children {
			cp.Children[i] = Clone(child)
		}
	}
	return &cp
}

// Walk visits node and its descendants in pre-order. depth is 0 for node.
// Returning false from fn skips the visited node's children.
func Walk(node *vfstree.Node, fn func(n *vfstree.Node, depth int) bool) {
	walk(node, 0, fn)
}

func walk(node *vfstree.Node, depth int, fn func(n *vfstree.Node, depth int) bool) {
	if node == nil {
		return
	}
	if !fn(node, depth) {
		return
	}
	for _, child := range node.Children {
		walk(child, depth+1, fn)
	}
}

// CountNodes counts all nodes in a tree
func CountNodes(root *vfstree.Node) int {
	if root == nil {
		return 0
	}
	count := 1
	for _, child := range root.Children {
		count += CountNodes(child)
	}
	return count
}

// PathTo returns the names from root down to the node with id, inclusive.
// Returns nil if id is not in the tree.
func PathTo(root *vfstree.Node, id string) []string {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return []string{root.Name}
	}
	for _, child := range root.Children {
		if sub := PathTo(child, id); sub != nil {
			return append([]string{root.Name}, sub...)
		}
	}
	return nil
}
