package workspace

import (
	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/filesystem"
)

// Workspace is a tree with history. Each edit derives a new version
// through the [filesystem.Engine] and records it for undo.
type Workspace struct {
	name    string
	engine  *filesystem.Engine
	history *History
}

// New creates a workspace starting from tree (normalized with EnsureRoot).
// historyLimit <= 0 keeps every version.
func New(name string, engine *filesystem.Engine, tree *vfstree.Node, historyLimit int) *Workspace {
	engine.Observe(tree)
	return &Workspace{
		name:    name,
		engine:  engine,
		history: NewHistory(engine.EnsureRoot(tree), historyLimit),
	}
}

func (w *Workspace) Name() string {
	return w.name
}

// Tree returns the current version. Treat it as read-only.
func (w *Workspace) Tree() *vfstree.Node {
	return w.history.Current()
}

func (w *Workspace) Find(id string) *vfstree.Node {
	return filesystem.Find(w.Tree(), id)
}

// CreateFile creates a file and adds it under parentID. Returns the new node's ID.
func (w *Workspace) CreateFile(parentID, name, contentType, content string) string {
	n := w.engine.CreateFile(name, contentType, content)
	w.Add(parentID, n)
	return n.ID
}

// CreateFolder creates a folder and adds it under parentID. Returns the new node's ID.
func (w *Workspace) CreateFolder(parentID, name string) string {
	n := w.engine.CreateFolder(name)
	w.Add(parentID, n)
	return n.ID
}

// Add is [filesystem.Engine.AddNode] on the current version
func (w *Workspace) Add(parentID string, n *vfstree.Node) *vfstree.Node {
	return w.history.Apply(func(cur *vfstree.Node) *vfstree.Node {
		return w.engine.AddNode(cur, parentID, n)
	})
}

// Delete is [filesystem.Engine.DeleteNode] on the current version
func (w *Workspace) Delete(id string) *vfstree.Node {
	return w.history.Apply(func(cur *vfstree.Node) *vfstree.Node {
		return w.engine.DeleteNode(cur, id)
	})
}

// Rename is [filesystem.Engine.RenameNode] on the current version
func (w *Workspace) Rename(id, name string) *vfstree.Node {
	return w.history.Apply(func(cur *vfstree.Node) *vfstree.Node {
		return w.engine.RenameNode(cur, id, name)
	})
}

// UpdateContent is [filesystem.Engine.UpdateFileContent] on the current version
func (w *Workspace) UpdateContent(id, content string) *vfstree.Node {
	return w.history.Apply(func(cur *vfstree.Node) *vfstree.Node {
		return w.engine.UpdateFileContent(cur, id, content)
	})
}

// Replace makes tree (normalized) the current version, e.g. after loading a file
func (w *Workspace) Replace(tree *vfstree.Node) *vfstree.Node {
	w.engine.Observe(tree)
	return w.history.Apply(func(*vfstree.Node) *vfstree.Node {
		return w.engine.EnsureRoot(tree)
	})
}

func (w *Workspace) Undo() (*vfstree.Node, bool) {
	return w.history.Undo()
}

func (w *Workspace) Redo() (*vfstree.Node, bool) {
	return w.history.Redo()
}

// History exposes the underlying version history
func (w *Workspace) History() *History {
	return w.history
}
