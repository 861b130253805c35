package requests

import "github.com/brettbedarf/vfstree"

// NodeRequestDTO is the JSON representation of a node to create.
// IDs are never read from requests; the engine assigns fresh ones.
//
// Ex.
//
//	[
//	  {"type": "folder", "name": "docs", "children": [
//	    {"type": "file", "name": "readme.md", "content_type": "text/markdown", "content": "# hi"}
//	  ]},
//	  {"type": "file", "name": "todo.txt"}
//	]
type NodeRequestDTO struct {
	Type        vfstree.NodeType `json:"type"`
	Name        string           `json:"name"`
	ContentType *string          `json:"content_type,omitempty"` // Default is the configured content type
	Content     *string          `json:"content,omitempty"`      // Default ""
	Children    []NodeRequestDTO `json:"children,omitempty"`     // folders only
}
