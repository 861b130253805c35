package requests

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/util"
)

var ErrUnknownNodeType = errors.New("unknown node type")

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (vfstree.NodeType, error) {
	var meta struct {
		Type vfstree.NodeType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalNodeRequests decodes a JSON array of node requests and checks
// every entry (recursively) has a known type and that files have no children.
func UnmarshalNodeRequests(data []byte) ([]NodeRequestDTO, error) {
	logger := util.GetLogger("requests.Unmarshal")

	var rawNodes []json.RawMessage
	if err := json.Unmarshal(data, &rawNodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal node requests: %w", err)
	}

	reqs := make([]NodeRequestDTO, 0, len(rawNodes))
	for i, rawNode := range rawNodes {
		// Determine the node type before decoding the rest
		nodeType, err := GetNodeType(rawNode)
		if err != nil {
			return nil, fmt.Errorf("node request %d: failed to get node type: %w", i, err)
		}
		switch nodeType {
		case vfstree.FileNodeType, vfstree.FolderNodeType:
		default:
			return nil, fmt.Errorf("node request %d: %w: %q", i, ErrUnknownNodeType, nodeType)
		}

		var req NodeRequestDTO
		if err := json.Unmarshal(rawNode, &req); err != nil {
			return nil, fmt.Errorf("node request %d: failed to unmarshal %s request: %w", i, nodeType, err)
		}
		if err := check(&req); err != nil {
			return nil, fmt.Errorf("node request %d: %w", i, err)
		}
		reqs = append(reqs, req)
		logger.Trace().Int("index", i).Str("type", string(nodeType)).Str("name", req.Name).Msg("Processed node request")
	}
	return reqs, nil
}

func check(req *NodeRequestDTO) error {
	switch req.Type {
	case vfstree.FileNodeType:
		if len(req.Children) > 0 {
			return fmt.Errorf("file %q cannot have children", req.Name)
		}
	case vfstree.FolderNodeType:
		for i := range req.Children {
			if err := check(&req.Children[i]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNodeType, req.Type)
	}
	return nil
}

// Build creates the requested nodes with e and adds them, in order, under
// parentID in root. Children of a folder request are added under the folder
// just created. Returns the resulting tree; root itself is not modified.
//
// Requests are expected to come from [UnmarshalNodeRequests]; unknown types
// are skipped with a warning.
func Build(e *filesystem.Engine, root *vfstree.Node, parentID string, reqs []NodeRequestDTO) *vfstree.Node {
	e.Observe(root)
	root = e.EnsureRoot(root)
	if filesystem.Find(root, parentID) == nil {
		parentID = root.ID
	}
	return build(e, root, parentID, reqs)
}

func build(e *filesystem.Engine, root *vfstree.Node, parentID string, reqs []NodeRequestDTO) *vfstree.Node {
	logger := util.GetLogger("requests.Build")

	for _, req := range reqs {
		var node *vfstree.Node
		switch req.Type {
		case vfstree.FileNodeType:
			node = e.CreateFile(req.Name, util.ValueOrDefault(req.ContentType, ""), util.ValueOrDefault(req.Content, ""))
		case vfstree.FolderNodeType:
			node = e.CreateFolder(req.Name)
		default:
			logger.Warn().Str("type", string(req.Type)).Str("name", req.Name).Msg("Unknown node type")
			continue
		}
		root = e.AddNode(root, parentID, node)
		logger.Trace().Str("id", node.ID).Str("name", req.Name).Msg("Added requested node")

		if len(req.Children) > 0 && node.IsFolder() {
			root = build(e, root, node.ID, req.Children)
		}
	}
	return root
}
