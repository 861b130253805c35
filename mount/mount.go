// Package mount exposes a tree snapshot as a read-only FUSE filesystem.
package mount

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

const (
	dirMode  = 0o555
	fileMode = 0o444
)

// dirNode is a read-only directory backed by a folder node.
// The whole inode tree is built once in OnAdd.
type dirNode struct {
	fs.Inode
	node *vfstree.Node
}

var (
	_ fs.NodeOnAdder   = (*dirNode)(nil)
	_ fs.NodeGetattrer = (*dirNode)(nil)
)

func (d *dirNode) OnAdd(ctx context.Context) {
	addChildren(ctx, &d.Inode, d.node)
}

func (d *dirNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = dirMode
	return 0
}

func addChildren(ctx context.Context, parent *fs.Inode, node *vfstree.Node) {
	logger := util.GetLogger("Mount.addChildren")

	names := entryNames(node.Children)
	for i, child := range node.Children {
		var ch *fs.Inode
		switch child.Type {
		case vfstree.FolderNodeType:
			ch = parent.NewPersistentInode(ctx, &dirNode{node: child}, fs.StableAttr{Mode: fuse.S_IFDIR})
		case vfstree.FileNodeType:
			data := []byte(child.Content)
			ch = parent.NewPersistentInode(ctx, &fs.MemRegularFile{
				Data: data,
				Attr: fuse.Attr{Mode: fileMode, Size: uint64(len(data))},
			}, fs.StableAttr{Mode: fuse.S_IFREG})
		default:
			logger.Warn().Str("id", child.ID).Str("type", string(child.Type)).Msg("Skipping node of unknown type")
			continue
		}
		parent.AddChild(names[i], ch, false)
		logger.Trace().Str("id", child.ID).Str("entry", names[i]).Msg("Added entry")
	}
}

// Server is a mounted tree
type Server struct {
	server     *fuse.Server
	mountPoint string
}

// Mount exposes a copy of tree at mountPoint and returns once the kernel has
// the mount. Later changes to tree are not visible. A nil cfg uses defaults.
func Mount(tree *vfstree.Node, mountPoint string, cfg *config.Config) (*Server, error) {
	logger := util.GetLogger("Mount")

	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if !tree.IsFolder() {
		return nil, fmt.Errorf("mount %s: root must be a folder", mountPoint)
	}

	attrTimeout := secondsToDuration(cfg.AttrTimeout)
	entryTimeout := secondsToDuration(cfg.EntryTimeout)
	opts := &fs.Options{
		MountOptions: fuse.MountOptions{
			FsName: cfg.FsName,
			Name:   cfg.Name,
			Debug:  cfg.Debug || cfg.LogLvl == util.TraceLevel,
			Logger: util.NewLogLogger("FuseServer", util.DebugLevel),
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
		UID:          uint32(os.Getuid()),
		GID:          uint32(os.Getgid()),
	}

	root := &dirNode{node: filesystem.Clone(tree)}
	srv, err := fs.Mount(mountPoint, root, opts)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", mountPoint, err)
	}
	logger.Info().Str("mountpoint", mountPoint).Int("nodes", filesystem.CountNodes(root.node)).Msg("Tree mounted")
	return &Server{server: srv, mountPoint: mountPoint}, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (s *Server) MountPoint() string {
	return s.mountPoint
}

// Wait blocks until the filesystem is unmounted
func (s *Server) Wait() {
	s.server.Wait()
}

// Unmount cleanly unmounts the filesystem.
func (s *Server) Unmount() error {
	return s.server.Unmount()
}
