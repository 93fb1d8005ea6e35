package stage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ddddddO/gtree"
)

// RenderTree renders the directory at dir as a tree, descending at most
// maxDepth levels below the root. Staged vendored trees are large, so
// callers keep the depth shallow for log output.
func RenderTree(dir string, maxDepth int) (string, error) {
	root := gtree.NewRoot(filepath.Base(dir))
	if err := addChildren(root, dir, maxDepth); err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := gtree.OutputProgrammably(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func addChildren(parent *gtree.Node, dir string, depth int) error {
	if depth <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		node := parent.Add(entry.Name())
		if entry.IsDir() {
			if err := addChildren(node, filepath.Join(dir, entry.Name()), depth-1); err != nil {
				return err
			}
		}
	}
	return nil
}
