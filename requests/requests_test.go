package requests

import (
	"testing"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/codec"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/idgen"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `[
  {"type": "folder", "name": "docs", "children": [
    {"type": "file", "name": "readme.md", "content_type": "text/markdown", "content": "# hi"},
    {"type": "folder", "name": "empty"}
  ]},
  {"type": "file", "name": "todo.txt"}
]`

func TestGetNodeType(t *testing.T) {
	t.Parallel()

	typ, err := GetNodeType([]byte(`{"type":"file","name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, vfstree.FileNodeType, typ)

	_, err = GetNodeType([]byte(`nope`))
	assert.Error(t, err)
}

func TestUnmarshalNodeRequests(t *testing.T) {
	t.Parallel()

	reqs, err := UnmarshalNodeRequests([]byte(seedJSON))

	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, vfstree.FolderNodeType, reqs[0].Type)
	require.Len(t, reqs[0].Children, 2)
	assert.Equal(t, util.Pointer("text/markdown"), reqs[0].Children[0].ContentType)
	assert.Nil(t, reqs[1].Content)
}

func TestUnmarshalNodeRequests_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		contain string
	}{
		{"malformed", `[{`, "failed to unmarshal node requests"},
		{"not_array", `{"type":"file"}`, "failed to unmarshal node requests"},
		{"not_object", `[1]`, "failed to get node type"},
		{"bad_field", `[{"type":"file","name":7}]`, "failed to unmarshal file request"},
		{"unknown_type", `[{"type":"symlink","name":"s"}]`, "unknown node type"},
		{"nested_unknown_type", `[{"type":"folder","name":"d","children":[{"type":"dir"}]}]`, "unknown node type"},
		{"file_children", `[{"type":"file","name":"f","children":[{"type":"file"}]}]`, "cannot have children"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := UnmarshalNodeRequests([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contain)
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	e := filesystem.NewEngine(nil, idgen.NewSequence("s"))
	reqs, err := UnmarshalNodeRequests([]byte(seedJSON))
	require.NoError(t, err)

	tree := Build(e, nil, "", reqs)

	require.Len(t, tree.Children, 2)
	docs := tree.Children[0]
	assert.Equal(t, "docs", docs.Name)
	assert.True(t, docs.IsFolder())
	require.Len(t, docs.Children, 2)
	assert.Equal(t, "readme.md", docs.Children[0].Name)
	assert.Equal(t, "text/markdown", docs.Children[0].ContentType)
	assert.Equal(t, "# hi", docs.Children[0].Content)
	assert.True(t, docs.Children[1].IsFolder())

	todo := tree.Children[1]
	assert.Equal(t, vfstree.DefaultContentType, todo.ContentType)
	assert.Equal(t, "", todo.Content)
	assert.Equal(t, 6, filesystem.CountNodes(tree))
}

func TestBuild_UnderParent(t *testing.T) {
	t.Parallel()

	e := filesystem.NewEngine(nil, idgen.NewSequence("p"))
	root := e.EnsureRoot(nil)
	home := e.CreateFolder("home")
	root = e.AddNode(root, root.ID, home)
	before := filesystem.Clone(root)

	out := Build(e, root, home.ID, []NodeRequestDTO{{Type: vfstree.FileNodeType, Name: "a"}})

	assert.Equal(t, before, root, "input tree must not change")
	require.Len(t, filesystem.Find(out, home.ID).Children, 1)
}

func TestBuild_MissingParentUsesRoot(t *testing.T) {
	t.Parallel()

	e := filesystem.NewEngine(nil, idgen.NewSequence("m"))

	out := Build(e, nil, "missing", []NodeRequestDTO{{Type: vfstree.FolderNodeType, Name: "d"}})

	require.Len(t, out.Children, 1)
	assert.Equal(t, "d", out.Children[0].Name)
}

func TestBuild_SkipsUnknownTypes(t *testing.T) {
	t.Parallel()

	e := filesystem.NewEngine(nil, idgen.NewSequence("u"))

	out := Build(e, nil, "", []NodeRequestDTO{
		{Type: "symlink", Name: "s"},
		{Type: vfstree.FileNodeType, Name: "f"},
	})

	require.Len(t, out.Children, 1)
	assert.Equal(t, "f", out.Children[0].Name)
}

func TestBuild_OntoReloadedSequenceTree(t *testing.T) {
	t.Parallel()

	reqs, err := UnmarshalNodeRequests([]byte(seedJSON))
	require.NoError(t, err)

	first := filesystem.NewEngine(nil, idgen.NewSequence("node"))
	data, err := codec.Marshal(Build(first, nil, "", reqs), codec.JSONFormat)
	require.NoError(t, err)
	saved, err := codec.Unmarshal(data, codec.JSONFormat)
	require.NoError(t, err)

	// a fresh process starts its sequence over
	second := filesystem.NewEngine(nil, idgen.NewSequence("node"))
	out := Build(second, saved, "", reqs)

	require.NoError(t, codec.Validate(out))
	assert.Equal(t, 2*filesystem.CountNodes(saved)-1, filesystem.CountNodes(out))
	assert.Equal(t, saved.ID, out.ID)
}
