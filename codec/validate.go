package codec

import (
	"fmt"

	"github.com/brettbedarf/vfstree"
)

// Validate checks the structural invariants of a tree built outside the engine:
// the root is a folder, every node has a unique non-empty ID and a known type,
// and files have no children.
func Validate(root *vfstree.Node) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvalidTree)
	}
	if !root.IsFolder() {
		return fmt.Errorf("%w: root %q is not a folder", ErrInvalidTree, root.ID)
	}
	seen := make(map[string]struct{})
	return validate(root, seen)
}

func validate(n *vfstree.Node, seen map[string]struct{}) error {
	if n == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidTree)
	}
	if n.ID == "" {
		return fmt.Errorf("%w: node %q has no id", ErrInvalidTree, n.Name)
	}
	if _, dup := seen[n.ID]; dup {
		return fmt.Errorf("%w: duplicate id %q", ErrInvalidTree, n.ID)
	}
	seen[n.ID] = struct{}{}

	switch n.Type {
	case vfstree.FileNodeType:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: file %q has children", ErrInvalidTree, n.ID)
		}
	case vfstree.FolderNodeType:
		for _, child := range n.Children {
			if err := validate(child, seen); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: node %q has unknown type %q", ErrInvalidTree, n.ID, n.Type)
	}
	return nil
}
