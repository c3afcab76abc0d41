package search

import "sync/atomic"

// AddCoordinator implements the library-refresh deduplication protocol of
// spec §4.5. addedTable is accessed by exactly one actor at a time in two
// regimes: while adding is true, only the background scan (through the
// filter callback) touches it; while false, only the caller driving the
// refresh lifecycle does. adding is the regime's linearization point - the
// spec's spin-lock is realized here as an atomic.Bool with acquire/release
// semantics (spec Design Note: "a minimal atomic-boolean with
// acquire/release ordering is equivalent and preferable"), since nothing
// but that one flip and its happens-before edge needs protecting.
type AddCoordinator struct {
	adding     atomic.Bool
	addedTable map[string]bool
}

// NewAddCoordinator returns a coordinator with no refresh in progress.
func NewAddCoordinator() *AddCoordinator {
	return &AddCoordinator{}
}

// BeginRefresh is the start-of-refresh step (spec §4.5.1), run by the
// caller before handing the URI to the scanner. existing is the set of
// filenames currently in the playlist; dup reports, for each of them,
// whether it is a duplicate of an earlier entry with the same filename
// (such entries are the ones the caller should delete to collapse
// duplicates before the scan begins).
func (c *AddCoordinator) BeginRefresh(existing []string) (dup []bool) {
	c.addedTable = make(map[string]bool, len(existing))
	dup = make([]bool, len(existing))

	for i, filename := range existing {
		if _, seen := c.addedTable[filename]; seen {
			dup[i] = true
			continue
		}
		c.addedTable[filename] = false
	}

	c.adding.Store(true)
	return dup
}

// Filter is the filter callback invoked by the scanner once per candidate
// URI on its own goroutine (spec §4.5.2). It returns true if the scanner
// should add the entry (it is new), false if it is already accounted for.
func (c *AddCoordinator) Filter(filename string) bool {
	if !c.adding.Load() {
		return false
	}

	added, exists := c.addedTable[filename]
	if !exists {
		c.addedTable[filename] = true
		return true
	}
	if !added {
		c.addedTable[filename] = true
	}
	return false
}

// CompleteRefresh is the add-complete step (spec §4.5.3). For each current
// playlist filename it reports whether the entry should be selected for
// deletion: true if the filename's stored flag is false (present before the
// scan but not rediscovered) or if the filename never appeared in the
// table at all. If every entry would be selected (the scan discovered
// nothing), CompleteRefresh returns all-false instead, so a scan that
// produces no results never wipes the playlist.
func (c *AddCoordinator) CompleteRefresh(current []string) (del []bool) {
	c.adding.Store(false)

	del = make([]bool, len(current))
	selected := 0
	for i, filename := range current {
		added, exists := c.addedTable[filename]
		if !exists || !added {
			del[i] = true
			selected++
		}
	}

	if selected >= len(current) {
		for i := range del {
			del[i] = false
		}
	}

	c.addedTable = nil
	return del
}

// Adding reports whether a refresh is currently in progress.
func (c *AddCoordinator) Adding() bool { return c.adding.Load() }

// Reset clears all coordinator state, e.g. on plugin teardown.
func (c *AddCoordinator) Reset() {
	c.adding.Store(false)
	c.addedTable = nil
}
