package discover

// Kind distinguishes the two entry types a scan can produce.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "dir"
}

// PathEntry is one discovered unit. AbsolutePath is always canonical
// (symlinks and relative segments resolved) and serves as the dedup key:
// two entries are the same entity iff their absolute paths are equal,
// regardless of how they were discovered.
type PathEntry struct {
	AbsolutePath string
	RelativePath string
	Depth        int
	Kind         Kind
}

// ResultSet is the ordered, immutable result of one discovery run.
// The canonical ordering sorts directories before files, then by relative
// path ascending, so downstream consumers see files in lexicographic
// relative-path order.
type ResultSet struct {
	Entries []PathEntry
}

// Files returns the file subset in result order.
func (rs *ResultSet) Files() []PathEntry {
	var files []PathEntry
	for _, e := range rs.Entries {
		if e.Kind == KindFile {
			files = append(files, e)
		}
	}
	return files
}

// FileCount returns the number of file entries.
func (rs *ResultSet) FileCount() int {
	n := 0
	for _, e := range rs.Entries {
		if e.Kind == KindFile {
			n++
		}
	}
	return n
}

// DirCount returns the number of directory entries.
func (rs *ResultSet) DirCount() int {
	n := 0
	for _, e := range rs.Entries {
		if e.Kind == KindDirectory {
			n++
		}
	}
	return n
}

// Without returns a copy of the result set with the entry for the given
// resolved absolute path removed. Used to keep the output file out of its
// own result set.
func (rs *ResultSet) Without(absPath string) *ResultSet {
	out := &ResultSet{Entries: make([]PathEntry, 0, len(rs.Entries))}
	for _, e := range rs.Entries {
		if e.AbsolutePath == absPath {
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}
