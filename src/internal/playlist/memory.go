package playlist

import (
	"context"
	"net/url"
	"sort"
	"sync"

	"github.com/google/uuid"
	l "github.com/sirupsen/logrus"
	"gitlab.com/mipimipi/libsearch/src/internal/search"
)

var log *l.Entry = l.WithFields(l.Fields{"srv": "playlist"})

// entry is one in-memory playlist row.
type entry struct {
	filename string
	tuple    search.Tuple
	selected bool
}

// Memory is a playlist.Service backed by a process-local slice. It is the
// concrete "opaque service" of spec §6, grounded on the teacher's Content
// struct (internal/content/content.go: an entries slice behind a mutex plus
// hook channels) re-homed from a UPnP content directory onto a playlist
// entry store. Filesystem enumeration (spec §1 Non-goal) stays confined to
// this package.
type Memory struct {
	mu      sync.Mutex
	id      uuid.UUID
	title   string
	entries []entry

	coordinator *search.AddCoordinator

	scanning bool
	adding   bool
	pending  bool

	addComplete  chan struct{}
	scanComplete chan struct{}
	updated      chan UpdateLevel
}

// New creates an empty playlist titled title.
func New(title string) *Memory {
	return &Memory{
		id:           uuid.New(),
		title:        title,
		coordinator:  search.NewAddCoordinator(),
		addComplete:  make(chan struct{}, 1),
		scanComplete: make(chan struct{}, 1),
		updated:      make(chan UpdateLevel, 8),
	}
}

// ID returns the playlist's unique id (spec glossary: "Library playlist ...
// identified by persistent title 'Library' and by a unique id"). The id is
// generated when the playlist is created and is not saved anywhere, so it
// lasts only for the life of the process.
func (m *Memory) ID() uuid.UUID { return m.id }

func (m *Memory) EntryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) Tuple(e int) search.Tuple {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e < 0 || e >= len(m.entries) {
		return search.Tuple{}
	}
	return m.entries[e].tuple
}

func (m *Memory) EntryFilename(e int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e < 0 || e >= len(m.entries) {
		return ""
	}
	return m.entries[e].filename
}

func (m *Memory) SetSelected(e int, selected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e < 0 || e >= len(m.entries) {
		return
	}
	m.entries[e].selected = selected
}

func (m *Memory) SelectedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.selected {
			n++
		}
	}
	return n
}

func (m *Memory) SelectAll(selected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		m.entries[i].selected = selected
	}
}

func (m *Memory) DeleteSelected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		if !e.selected {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}

// CacheSelected is a no-op in the in-memory adapter: there is no separate
// cache layer to warm, the selection already lives on the entries. It
// exists so callers (the UI's export action) can depend on the Service
// interface uniformly.
func (m *Memory) CacheSelected() {}

func (m *Memory) SortByPath() {
	m.mu.Lock()
	defer m.mu.Unlock()
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].filename < m.entries[j].filename
	})
}

func (m *Memory) AddInProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adding
}

func (m *Memory) ScanInProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scanning
}

func (m *Memory) UpdatePending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updated) > 0
}

// LibraryTitle is the persistent title of the special library playlist
// (spec glossary). Add-to-playlist is a disabled action on any Service
// whose title is currently this one.
const LibraryTitle = "Library"

func (m *Memory) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

func (m *Memory) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.title = title
}

func (m *Memory) SetActive() {
	// the in-memory adapter has no notion of a foreground playlist distinct
	// from itself; the UI controller tracks which Service is active.
}

func (m *Memory) AddComplete() <-chan struct{}    { return m.addComplete }
func (m *Memory) ScanComplete() <-chan struct{}   { return m.scanComplete }
func (m *Memory) Updated() <-chan UpdateLevel     { return m.updated }

// InsertFiltered scans uri (a file:// directory URI) for audio files on a
// background goroutine, calling filter once per candidate filename exactly
// as spec §4.5.2 requires, then publishes the scan-complete and
// add-complete hooks. This is the module's sole concurrent entry point
// (spec §5) for callers outside this package: everything else runs on the
// caller's goroutine.
func (m *Memory) InsertFiltered(ctx context.Context, uri string, filter FilterFunc) {
	go func() {
		m.doScan(ctx, uriToPath(uri), filter)
		m.notifyHooks()
	}()
}

// doScan walks dir and appends every candidate filter accepts. It runs on
// the caller's own goroutine - refresh (updater.go) already has its own
// dedicated driver goroutine, so it calls this directly instead of paying
// for another layer of concurrency InsertFiltered adds for its callers.
func (m *Memory) doScan(ctx context.Context, dir string, filter FilterFunc) {
	m.mu.Lock()
	m.adding = true
	m.scanning = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.scanning = false
		m.adding = false
		m.mu.Unlock()
	}()

	paths, err := scanDir(dir)
	if err != nil {
		log.WithError(err).Errorf("library scan of '%s' failed", dir)
		return
	}

	for _, p := range paths {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !filter(p) {
			continue
		}

		tup := readTuple(p)
		m.mu.Lock()
		m.entries = append(m.entries, entry{filename: p, tuple: tup})
		m.mu.Unlock()
	}
}

// notifyHooks fires the scan-complete, add-complete and update hooks on a
// best-effort basis: a listener that is not currently receiving (e.g. the
// invalidation loop is mid-rebuild) simply misses that particular pulse,
// which is fine since the next refresh cycle re-notifies regardless.
func (m *Memory) notifyHooks() {
	select {
	case m.scanComplete <- struct{}{}:
	default:
	}
	select {
	case m.addComplete <- struct{}{}:
	default:
	}
	select {
	case m.updated <- Structure:
	default:
	}
}

// InsertBatch appends already-resolved entries, e.g. copied from a search
// result's matches into the active playlist.
func (m *Memory) InsertBatch(entries []Entry, play bool) {
	m.mu.Lock()
	for _, e := range entries {
		m.entries = append(m.entries, entry{filename: e.Filename, tuple: e.Tuple})
	}
	m.mu.Unlock()

	select {
	case m.updated <- Structure:
	default:
	}
}

// Filenames returns every entry's filename, in playlist order - used by
// the add coordinator's start-of-refresh step.
func (m *Memory) Filenames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.filename
	}
	return names
}

// collapseDuplicates drops entries flagged by a coordinator's BeginRefresh
// dup slice. It must be called before any concurrent InsertFiltered scan
// appends further entries, since dup is indexed against the entries slice
// as it stood when the refresh began.
func (m *Memory) collapseDuplicates(dup []bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	for i, e := range m.entries {
		if i < len(dup) && dup[i] {
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
}

// applyDeletions drops entries flagged by a coordinator's CompleteRefresh
// del slice, indexed the same way.
func (m *Memory) applyDeletions(del []bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	for i, e := range m.entries {
		if i < len(del) && del[i] {
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
}

func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" {
		return uri
	}
	return u.Path
}
