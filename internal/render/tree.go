// Package render reconstructs a nested hierarchy from the flat file list and
// prints it with box-drawing connectors, the classic tree utility layout.
// Pure presentation: no filesystem access.
package render

import (
	"path/filepath"
	"sort"
	"strings"

	"corpus/internal/discover"
)

type node struct {
	children map[string]*node
	isFile   bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Tree renders the file subset of a result set. The root label is the
// deepest common ancestor directory of all file parents.
func Tree(rs *discover.ResultSet) string {
	files := rs.Files()
	if len(files) == 0 {
		return "(No files found)\n"
	}

	ancestor := commonAncestor(files)
	root := newNode()
	for _, f := range files {
		rel, err := filepath.Rel(ancestor, f.AbsolutePath)
		if err != nil {
			rel = filepath.Base(f.AbsolutePath)
		}
		insert(root, strings.Split(filepath.ToSlash(rel), "/"))
	}

	var b strings.Builder
	b.WriteString(filepath.Base(ancestor) + "/\n")
	renderNode(&b, root, "")
	return b.String()
}

// commonAncestor intersects the path-part prefixes of every file's parent
// directory. Disjoint paths (no shared filesystem root) fall back to the
// first file's parent.
func commonAncestor(files []discover.PathEntry) string {
	common := splitParts(filepath.Dir(files[0].AbsolutePath))
	for _, f := range files[1:] {
		parts := splitParts(filepath.Dir(f.AbsolutePath))
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
		if len(common) == 0 {
			return filepath.Dir(files[0].AbsolutePath)
		}
	}
	return string(filepath.Separator) + filepath.Join(common...)
}

func splitParts(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func insert(n *node, parts []string) {
	if len(parts) == 0 {
		return
	}
	child, ok := n.children[parts[0]]
	if !ok {
		child = newNode()
		n.children[parts[0]] = child
	}
	if len(parts) == 1 {
		child.isFile = true
		return
	}
	insert(child, parts[1:])
}

func renderNode(b *strings.Builder, n *node, prefix string) {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	// Directories first, then files, each alphabetical case-insensitive.
	sort.SliceStable(names, func(i, j int) bool {
		fi, fj := n.children[names[i]].isFile, n.children[names[j]].isFile
		if fi != fj {
			return !fi
		}
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for i, name := range names {
		last := i == len(names)-1
		connector := "├── "
		if last {
			connector = "└── "
		}

		child := n.children[name]
		display := name
		if !child.isFile {
			display += "/"
		}
		b.WriteString(prefix + connector + display + "\n")

		if !child.isFile && len(child.children) > 0 {
			continuation := "│   "
			if last {
				continuation = "    "
			}
			renderNode(b, child, prefix+continuation)
		}
	}
}
