// Package vfstree contains the core domain types for the in-memory virtual file system tree.
package vfstree

// NodeType valid types are FileNodeType "file", FolderNodeType "folder"
type NodeType string

const (
	FileNodeType   NodeType = "file"
	FolderNodeType NodeType = "folder"
)

const (
	// DefaultRootName is the name given to freshly created roots
	DefaultRootName = "root"
	// DefaultContentType is used for files created without an explicit content type
	DefaultContentType = "text/plain"
)

// Node is a single element of the tree, either a file (leaf) or a folder.
//
// Trees are plain nested values. The filesystem package never mutates a Node
// it was handed; every mutation returns a new tree. Callers holding a tree
// returned by an operation should treat it as read-only and use the
// filesystem operations to derive new versions.
type Node struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Type        NodeType `json:"type" yaml:"type"`
	ContentType string   `json:"content_type,omitempty" yaml:"content_type,omitempty"` // MIME-like; files only
	Content     string   `json:"content,omitempty" yaml:"content,omitempty"`          // files only
	Children    []*Node  `json:"children" yaml:"children"`                            // always empty for files
}

// IsFile returns true if the node is a file leaf
func (n *Node) IsFile() bool {
	return n != nil && n.Type == FileNodeType
}

// IsFolder returns true if the node is a folder
func (n *Node) IsFolder() bool {
	return n != nil && n.Type == FolderNodeType
}

// IDGenerator produces node identifiers. Implementations must be safe for
// concurrent use and unique with overwhelming probability for the life of the process.
type IDGenerator interface {
	NewID() string
}
