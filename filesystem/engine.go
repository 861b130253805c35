package filesystem

import (
	"fmt"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/idgen"
	"github.com/brettbedarf/vfstree/internal/util"
)

// Engine creates nodes and derives new tree versions from old ones.
//
// Every mutation clones its input and returns the clone; the tree passed in is
// never modified, so callers can keep old versions around (undo, diffing).
// None of the mutations report errors: a missing target degrades to a no-op
// or to the documented root fallback. Engine holds no tree state and is safe
// for concurrent use as long as its IDGenerator is.
type Engine struct {
	cfg *config.Config
	ids vfstree.IDGenerator
}

// NewEngine creates an Engine using ids for every node it constructs.
// A nil cfg uses defaults.
func NewEngine(cfg *config.Config, ids vfstree.IDGenerator) *Engine {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Engine{cfg: cfg, ids: ids}
}

// NewEngineFromConfig creates an Engine whose IDGenerator is looked up by
// cfg.IDGenerator in the default [idgen] registry.
func NewEngineFromConfig(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	ids, err := idgen.New(cfg.IDGenerator, cfg.IDSequencePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return NewEngine(cfg, ids), nil
}

// CreateFile returns a new file node with a fresh ID and no children.
// An empty contentType falls back to the configured default.
func (e *Engine) CreateFile(name, contentType, content string) *vfstree.Node {
	if contentType == "" {
		contentType = e.cfg.DefaultContentType
	}
	return &vfstree.Node{
		ID:          e.ids.NewID(),
		Name:        name,
		Type:        vfstree.FileNodeType,
		ContentType: contentType,
		Content:     content,
		Children:    []*vfstree.Node{},
	}
}

// CreateFolder returns a new empty folder node with a fresh ID.
func (e *Engine) CreateFolder(name string) *vfstree.Node {
	return &vfstree.Node{
		ID:       e.ids.NewID(),
		Name:     name,
		Type:     vfstree.FolderNodeType,
		Children: []*vfstree.Node{},
	}
}

// EnsureRoot returns tree unchanged if it is a node with an ID, otherwise a
// fresh empty root folder.
func (e *Engine) EnsureRoot(tree *vfstree.Node) *vfstree.Node {
	if tree != nil && tree.ID != "" {
		return tree
	}
	return e.CreateFolder(e.cfg.RootName)
}

// idObserver is implemented by generators that must skip IDs already in use,
// such as [idgen.Sequence].
type idObserver interface {
	Observe(id string)
}

// Observe reports every ID in tree to the IDGenerator so nodes created
// afterwards cannot collide with them. No-op for random generators.
func (e *Engine) Observe(tree *vfstree.Node) {
	obs, ok := e.ids.(idObserver)
	if !ok {
		return
	}
	Walk(tree, func(n *vfstree.Node, _ int) bool {
		obs.Observe(n.ID)
		return true
	})
}

// FindNode is [Find] on a normalized tree
func (e *Engine) FindNode(tree *vfstree.Node, id string) *vfstree.Node {
	return Find(e.EnsureRoot(tree), id)
}

// AddNode appends a copy of n to the children of the folder parentID and
// returns the new tree. If parentID is not a folder in the tree, n is added
// to the root instead; this includes a file parentID, since files never get children.
//
// n must be freshly constructed: inserting an ID that already exists in the
// tree is not checked and breaks ID uniqueness.
func (e *Engine) AddNode(root *vfstree.Node, parentID string, n *vfstree.Node) *vfstree.Node {
	logger := util.GetLogger("Engine.AddNode")

	clone := Clone(e.EnsureRoot(root))
	if n == nil {
		logger.Debug().Str("parentID", parentID).Msg("Nil node; nothing added")
		return clone
	}

	target := Find(clone, parentID)
	if !target.IsFolder() {
		logger.Debug().Str("parentID", parentID).Str("nodeID", n.ID).Msg("Parent folder not found; adding to root")
		target = clone
	}
	if target.Children == nil {
		target.Children = []*vfstree.Node{}
	}
	target.Children = append(target.Children, Clone(n))
	logger.Trace().Str("parentID", target.ID).Str("nodeID", n.ID).Msg("Added node")
	return clone
}

// AddNodeStrict is [Engine.AddNode] without the root fallback. It returns
// [ErrNotFound] if parentID is not in the tree and [ErrNotFolder] if it is a file.
func (e *Engine) AddNodeStrict(root *vfstree.Node, parentID string, n *vfstree.Node) (*vfstree.Node, error) {
	root = e.EnsureRoot(root)
	parent := Find(root, parentID)
	if parent == nil {
		return nil, fmt.Errorf("add to %q: %w", parentID, ErrNotFound)
	}
	if !parent.IsFolder() {
		return nil, fmt.Errorf("add to %q: %w", parentID, ErrNotFolder)
	}
	return e.AddNode(root, parentID, n), nil
}

// DeleteNode returns a tree without the node id and its subtree.
// Deleting the root (or passing a nil tree) yields a brand new empty root
// with a new ID.
func (e *Engine) DeleteNode(root *vfstree.Node, id string) *vfstree.Node {
	logger := util.GetLogger("Engine.DeleteNode")

	if root == nil || root.ID == "" || root.ID == id {
		logger.Debug().Str("id", id).Msg("Root deleted; returning new empty root")
		return e.EnsureRoot(nil)
	}
	clone := Clone(root)
	if !removeChild(clone, id) {
		logger.Debug().Str("id", id).Msg("Node not found; nothing deleted")
	}
	return clone
}

// removeChild filters id out of every children list under node.
// Returns true if anything was removed.
func removeChild(node *vfstree.Node, id string) bool {
	if len(node.Children) == 0 {
		return false
	}
	removed := false
	kept := node.Children[:0]
	for _, child := range node.Children {
		if child.ID == id {
			removed = true
			continue
		}
		if removeChild(child, id) {
			removed = true
		}
		kept = append(kept, child)
	}
	// clear dropped tail so removed subtrees are not retained by the backing array
	for i := len(kept); i < len(node.Children); i++ {
		node.Children[i] = nil
	}
	node.Children = kept
	return removed
}

// RenameNode returns a tree where the node id is named name.
// No-op if id is not in the tree.
func (e *Engine) RenameNode(root *vfstree.Node, id, name string) *vfstree.Node {
	clone := Clone(e.EnsureRoot(root))
	if node := Find(clone, id); node != nil {
		node.Name = name
	} else {
		logger := util.GetLogger("Engine.RenameNode")
		logger.Debug().Str("id", id).Msg("Node not found; nothing renamed")
	}
	return clone
}

// UpdateFileContent returns a tree where the file id holds content.
// No-op if id is not in the tree or is a folder.
func (e *Engine) UpdateFileContent(root *vfstree.Node, id, content string) *vfstree.Node {
	clone := Clone(e.EnsureRoot(root))
	if node := Find(clone, id); node.IsFile() {
		node.Content = content
	} else {
		logger := util.GetLogger("Engine.UpdateFileContent")
		logger.Debug().Str("id", id).Bool("found", node != nil).Msg("File not found; content unchanged")
	}
	return clone
}
