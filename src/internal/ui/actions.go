package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/mipimipi/libsearch/src/internal/playlist"
	"gitlab.com/mipimipi/libsearch/src/internal/search"
)

// play switches the active playlist to the designated temporary playlist and
// appends item's matches to it with InsertBatch's play flag set. The
// in-memory playlist host ignores that flag: no audio is played.
func (m Model) play(item *search.Item) (tea.Model, tea.Cmd) {
	entries := m.entriesForItem(item)
	if len(entries) == 0 {
		return m, nil
	}

	target := m.manager.Temporary()
	m.manager.SetActive(target)
	target.InsertBatch(entries, true)

	return m.withStatus("playing " + search.Label(item, false)), nil
}

// createPlaylist allocates a new playlist and appends item's matches to it.
// The terminal result list only ever reports one selected row, so the new
// playlist is always titled after that row's name, matching the original's
// single-selection title rule.
func (m Model) createPlaylist(item *search.Item) (tea.Model, tea.Cmd) {
	entries := m.entriesForItem(item)
	if len(entries) == 0 {
		return m, nil
	}

	p := m.manager.New(item.Name)
	p.InsertBatch(entries, false)
	m.manager.SetActive(p)

	return m.withStatus("created playlist " + p.Title()), nil
}

// addToPlaylist appends item's matches to the currently active playlist,
// refusing if that playlist is the library itself.
//
// Resolving the add-to-playlist ambiguity: the original Qt widget treated
// "Add to Playlist" on the library playlist itself as a silent no-op. Here
// it is instead a visibly disabled action - the status line reports it -
// since silently dropping a user's keypress is worse than saying why it
// did nothing.
func (m Model) addToPlaylist(item *search.Item) (tea.Model, tea.Cmd) {
	active := m.manager.Active()
	if active.Title() == playlist.LibraryTitle {
		return m.withStatus("cannot add to the library playlist itself"), nil
	}

	entries := m.entriesForItem(item)
	if len(entries) == 0 {
		return m, nil
	}
	active.InsertBatch(entries, false)

	return m.withStatus("added " + search.Label(item, false)), nil
}

// exportSelection is the terminal-native replacement for the original
// search box's drag-and-drop export: it resolves item's matches into
// playlist.Entry values and caches the selection on the library playlist,
// exactly as a drag payload would before a drop target reads it back.
func (m Model) exportSelection(item *search.Item) (tea.Model, tea.Cmd) {
	entries := m.entriesForItem(item)
	if len(entries) == 0 {
		return m.withStatus("nothing to export"), nil
	}

	library := m.manager.Library()
	library.SelectAll(false)
	for _, e := range item.Matches {
		library.SetSelected(e, true)
	}
	library.CacheSelected()
	return m.withStatus("exported " + search.Label(item, false)), nil
}

// entriesForItem resolves a result item's Matches (playlist-entry indices)
// into fully-formed Entry values via the library's TupleSource.
func (m Model) entriesForItem(item *search.Item) []playlist.Entry {
	library := m.manager.Library()
	entries := make([]playlist.Entry, 0, len(item.Matches))
	for _, e := range item.Matches {
		entries = append(entries, playlist.Entry{
			Filename: library.EntryFilename(e),
			Tuple:    library.Tuple(e),
		})
	}
	return entries
}

func (m Model) withStatus(s string) Model {
	m.status = s
	return m
}
