// Package playlist defines the interface the search engine and its UI
// controller consume from the playlist host (spec §6), plus a concrete
// in-memory implementation so the module runs standalone.
package playlist

import (
	"context"

	"gitlab.com/mipimipi/libsearch/src/internal/search"
)

// UpdateLevel is the granularity of a playlist-update event.
type UpdateLevel int

const (
	// Selection changed only - no metadata or structure affected.
	Selection UpdateLevel = iota
	// Metadata changed (tags were (re-)scanned). This is the level spec
	// §4.7 uses to decide whether a playlist update must invalidate the
	// search index: updates at this level or above (Structure) do.
	Metadata
	// Structure changed (entries inserted/removed/reordered).
	Structure
)

// FilterFunc is called once per candidate filename on the scanner's own
// goroutine while a filtered insert is in progress (spec §4.5.2). It
// returns true if the candidate should be added to the playlist.
type FilterFunc func(filename string) bool

// Service is the set of playlist-host capabilities the search tool
// consumes (spec §6). It is intentionally behavior-shaped, not a literal
// transliteration of the original C function table.
type Service interface {
	search.TupleSource

	// EntryFilename returns the filename of playlist entry e.
	EntryFilename(e int) string

	// SetSelected marks entry e selected/unselected.
	SetSelected(e int, selected bool)
	// SelectedCount returns how many entries are currently selected.
	SelectedCount() int
	// SelectAll selects or deselects every entry.
	SelectAll(selected bool)
	// DeleteSelected removes every selected entry.
	DeleteSelected()
	// CacheSelected informs the host that the current selection should be
	// retained across the next structural change (e.g. for a pending
	// export/drag operation).
	CacheSelected()
	// SortByPath sorts entries by filesystem path.
	SortByPath()

	// AddInProgress reports whether an asynchronous add is running.
	AddInProgress() bool
	// ScanInProgress reports whether an asynchronous tag scan is running.
	ScanInProgress() bool
	// UpdatePending reports whether a playlist-update notification is
	// queued but not yet delivered.
	UpdatePending() bool

	// InsertFiltered asynchronously inserts candidates found under uri,
	// invoking filter once per candidate from the scanning goroutine, and
	// returns immediately. This is the sole concurrent entry point into
	// the core (spec §5).
	InsertFiltered(ctx context.Context, uri string, filter FilterFunc)
	// InsertBatch inserts entries (already fully known, e.g. copied from
	// another playlist's matches) at the end of the target playlist.
	InsertBatch(entries []Entry, play bool)

	// Title returns the playlist's display title.
	Title() string
	// SetTitle sets the playlist's display title.
	SetTitle(title string)
	// SetActive makes this playlist the active one.
	SetActive()

	// Hooks: the three events spec §4.7 reacts to.
	AddComplete() <-chan struct{}
	ScanComplete() <-chan struct{}
	Updated() <-chan UpdateLevel
}

// Entry is a fully-resolved playlist entry, used for InsertBatch /
// export, where the caller already has filename, tags and URI in hand.
type Entry struct {
	Filename string
	Tuple    search.Tuple
	URI      string
}
