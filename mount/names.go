package mount

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/vfstree"
)

// entryNames returns a directory entry name for each child, in order.
// Names that cannot be used as-is on a POSIX filesystem, or that collide with an
// earlier sibling, get the node ID appended as "name~id".
func entryNames(children []*vfstree.Node) []string {
	names := make([]string, len(children))
	used := make(map[string]struct{}, len(children))
	for i, child := range children {
		name := cleanName(child.Name)
		if _, dup := used[name]; dup || name == "" || name == "." || name == ".." {
			name = cleanName(child.Name + "~" + child.ID)
		}
		// an ID collision with a real sibling name is still possible
		for base, n := name, 1; ; n++ {
			if _, dup := used[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s~%d", base, n)
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}

// cleanName replaces path separators and NUL bytes
func cleanName(name string) string {
	return strings.NewReplacer("/", "_", "\x00", "_").Replace(name)
}
