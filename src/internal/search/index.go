package search

import (
	l "github.com/sirupsen/logrus"
)

var log *l.Entry = l.WithFields(l.Fields{"srv": "search"})

// Index is the hierarchical tagged tree described in spec §3: Genre nodes
// are flat top-level siblings, and Artist -> Album -> Title forms the
// descending chain below them. It is destroyed and rebuilt wholesale on
// invalidation - it is never patched in place.
type Index struct {
	root  map[Key]*Item
	valid bool
}

// NewIndex creates an empty, invalid index.
func NewIndex() *Index {
	return &Index{root: make(map[Key]*Item)}
}

// Valid reports whether the index reflects a complete build. It only
// becomes true after Build runs to completion - callers must never observe
// a partially built tree.
func (idx *Index) Valid() bool { return idx.valid }

// Invalidate clears the tree and marks the index invalid. The server's
// invalidation loop calls it before every rebuild: on add-complete, on
// scan-complete, and on playlist-update events of detail >= Metadata.
// Nothing calls it on shutdown.
func (idx *Index) Invalidate() {
	idx.root = make(map[Key]*Item)
	idx.valid = false
}

// Build performs a full scan of src, replacing the current tree. Cost is
// O(entries * len(fields)) map operations.
func (idx *Index) Build(src TupleSource) {
	log.Trace("building search index ...")

	idx.root = make(map[Key]*Item)
	idx.valid = false

	n := src.EntryCount()
	for e := 0; e < n; e++ {
		tup := src.Tuple(e)

		var parent *Item
		children := idx.root

		for _, f := range fields {
			val := tup.value(f)
			if val == "" {
				continue
			}

			key := Key{Field: f, Name: val}
			item, ok := children[key]
			if !ok {
				item = newItem(f, val, parent)
				children[key] = item
			}
			item.Matches = append(item.Matches, e)

			// Genre is outside the normal hierarchy: never descend into it.
			if f != Genre {
				if item.Children == nil {
					item.Children = make(map[Key]*Item)
				}
				parent = item
				children = item.Children
			}
		}
	}

	idx.valid = true
	log.Tracef("search index built over %d entries", n)
}

// Root exposes the top-level children map for the query engine.
func (idx *Index) Root() map[Key]*Item { return idx.root }
