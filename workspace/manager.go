package workspace

import (
	"sort"

	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/puzpuzpuz/xsync/v4"
)

// Manager holds named workspaces sharing one engine
type Manager struct {
	cfg        *config.Config
	engine     *filesystem.Engine
	workspaces *xsync.Map[string, *Workspace]
}

func NewManager(cfg *config.Config, engine *filesystem.Engine) *Manager {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Manager{
		cfg:        cfg,
		engine:     engine,
		workspaces: xsync.NewMap[string, *Workspace](),
	}
}

// Open returns the workspace called name, creating it with an empty root if needed.
// created reports whether this call created it.
func (m *Manager) Open(name string) (ws *Workspace, created bool) {
	logger := util.GetLogger("Manager.Open")

	if ws, ok := m.workspaces.Load(name); ok {
		return ws, false
	}
	ws, loaded := m.workspaces.LoadOrStore(name, New(name, m.engine, nil, m.cfg.HistoryLimit))
	if !loaded {
		logger.Debug().Str("workspace", name).Msg("Created workspace")
	}
	return ws, !loaded
}

// Get returns the workspace called name if it exists
func (m *Manager) Get(name string) (*Workspace, bool) {
	return m.workspaces.Load(name)
}

// Close forgets the workspace called name. Returns false if it did not exist.
func (m *Manager) Close(name string) bool {
	_, ok := m.workspaces.LoadAndDelete(name)
	return ok
}

// Names returns the open workspace names sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, m.workspaces.Size())
	m.workspaces.Range(func(name string, _ *Workspace) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}
