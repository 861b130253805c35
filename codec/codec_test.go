package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTree() *vfstree.Node {
	e := filesystem.NewEngine(nil, idgen.NewSequence("c"))
	root := e.EnsureRoot(nil)
	docs := e.CreateFolder("docs")
	root = e.AddNode(root, root.ID, docs)
	root = e.AddNode(root, docs.ID, e.CreateFile("a.txt", "", "hello\nworld"))
	root = e.AddNode(root, root.ID, e.CreateFile("data.json", "application/json", `{"k": [1, 2]}`))
	return root
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exp  Format
		err  bool
	}{
		{"tree.json", JSONFormat, false},
		{"tree.JSON", JSONFormat, false},
		{"tree.yaml", YAMLFormat, false},
		{"dir/tree.yml", YAMLFormat, false},
		{"tree.txt", "", true},
		{"tree", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := FormatFromPath(tt.path)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, got)
		})
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{JSONFormat, YAMLFormat} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			tree := createTestTree()

			data, err := Marshal(tree, format)
			require.NoError(t, err)
			got, err := Unmarshal(data, format)
			require.NoError(t, err)

			assert.Equal(t, tree, got)
		})
	}
}

func TestMarshal_JSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := Marshal(createTestTree(), JSONFormat)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"id": "c-1"`)
	assert.Contains(t, s, `"type": "folder"`)
	assert.Contains(t, s, `"content_type": "application/json"`)
	assert.Contains(t, s, `"children": []`)
}

func TestUnmarshal_HandWrittenYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
id: r
name: root
type: folder
children:
  - id: f1
    name: notes.md
    type: file
    content_type: text/markdown
    content: "# hi"
`)
	tree, err := Unmarshal(data, YAMLFormat)

	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "text/markdown", tree.Children[0].ContentType)
	assert.Equal(t, "# hi", tree.Children[0].Content)
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	t.Run("Malformed", func(t *testing.T) {
		t.Parallel()
		_, err := Unmarshal([]byte("{"), JSONFormat)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal json tree")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		t.Parallel()
		_, err := Unmarshal([]byte("{}"), Format("toml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
		_, err = Marshal(createTestTree(), Format("toml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Parallel()
		_, err := Unmarshal([]byte(`{"id":"r","type":"file"}`), JSONFormat)
		assert.ErrorIs(t, err, ErrInvalidTree)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	folder := func(id string, children ...*vfstree.Node) *vfstree.Node {
		return &vfstree.Node{ID: id, Type: vfstree.FolderNodeType, Children: children}
	}
	file := func(id string, children ...*vfstree.Node) *vfstree.Node {
		return &vfstree.Node{ID: id, Type: vfstree.FileNodeType, Children: children}
	}

	tests := []struct {
		name  string
		tree  *vfstree.Node
		valid bool
	}{
		{"valid", createTestTree(), true},
		{"empty_root", folder("r"), true},
		{"nil_root", nil, false},
		{"file_root", file("r"), false},
		{"missing_id", folder("r", file("")), false},
		{"duplicate_id", folder("r", file("x"), folder("d", file("x"))), false},
		{"root_id_reused", folder("r", file("r")), false},
		{"file_with_children", folder("r", file("f", file("g"))), false},
		{"unknown_type", folder("r", &vfstree.Node{ID: "s", Type: "symlink"}), false},
		{"nil_child", folder("r", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.tree)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTree)
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			tree := createTestTree()
			path := filepath.Join(t.TempDir(), "tree"+ext)

			require.NoError(t, SaveFile(path, tree))
			got, err := LoadFile(path)

			require.NoError(t, err)
			assert.Equal(t, tree, got)
		})
	}

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		t.Parallel()
		err := SaveFile(filepath.Join(t.TempDir(), "tree.txt"), createTestTree())
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}
